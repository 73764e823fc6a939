package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
)

// PostgresLedger writes transactions to the host's transactions table.
type PostgresLedger struct {
	db *sql.DB
}

// NewPostgresLedger creates a ledger on an open lib/pq connection.
func NewPostgresLedger(db *sql.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// InitDB creates the transactions table if it does not exist.
func (l *PostgresLedger) InitDB(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS exchange_transactions (
			id VARCHAR(36) PRIMARY KEY,
			method VARCHAR(50) NOT NULL,
			external_id VARCHAR(255) NOT NULL,
			status VARCHAR(50) NOT NULL,
			customer_id VARCHAR(255) NOT NULL,
			cart JSONB NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_exchange_transactions_method_external
			ON exchange_transactions(method, external_id)`,
	}

	for _, query := range queries {
		if _, err := l.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}

	return nil
}

// AddTransaction inserts txn and returns its new id.
func (l *PostgresLedger) AddTransaction(ctx context.Context, txn domain.Transaction) (string, error) {
	cart, err := json.Marshal(txn.Cart)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cart: %w", err)
	}

	id := uuid.New().String()
	_, err = l.db.ExecContext(ctx, `
		INSERT INTO exchange_transactions (id, method, external_id, status, customer_id, cart, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, txn.Method, txn.ExternalID, string(txn.Status), txn.CustomerID, cart, txn.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}

	return id, nil
}
