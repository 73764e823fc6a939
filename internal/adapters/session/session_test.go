package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
)

func TestResolverCurrentCustomer(t *testing.T) {
	r := NewResolver()

	_, err := r.CurrentCustomer(context.Background())
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	ctx := WithCustomer(context.Background(), domain.Customer{ID: "42", Email: "shopper@example.com"})
	customer, err := r.CurrentCustomer(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", customer.ID)
	assert.Equal(t, "shopper@example.com", customer.Email)

	_, err = r.CurrentCustomer(WithCustomer(context.Background(), domain.Customer{}))
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
