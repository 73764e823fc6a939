// Package ledger records PayPal Pro transactions in the host ledger.
package ledger

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
)

// MemoryLedger keeps transactions in process memory.
type MemoryLedger struct {
	mu           sync.Mutex
	transactions []domain.Transaction
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// AddTransaction stores txn under a new uuid and returns it.
func (l *MemoryLedger) AddTransaction(_ context.Context, txn domain.Transaction) (string, error) {
	txn.ID = uuid.New().String()

	l.mu.Lock()
	l.transactions = append(l.transactions, txn)
	l.mu.Unlock()

	return txn.ID, nil
}

// Transactions returns every recorded transaction in insertion order.
func (l *MemoryLedger) Transactions() []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}
