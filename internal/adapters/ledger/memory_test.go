package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
)

func TestMemoryLedgerAddTransaction(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()

	first, err := l.AddTransaction(ctx, domain.Transaction{Method: "paypal_pro", ExternalID: "8AB"})
	require.NoError(t, err)
	second, err := l.AddTransaction(ctx, domain.Transaction{Method: "paypal_pro", ExternalID: "9CD"})
	require.NoError(t, err)

	_, err = uuid.Parse(first)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	txns := l.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, first, txns[0].ID)
	assert.Equal(t, "9CD", txns[1].ExternalID)
}
