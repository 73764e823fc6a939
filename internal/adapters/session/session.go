// Package session carries the shopper the host identified for a request.
package session

import (
	"context"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
)

type customerKey struct{}

// WithCustomer returns a context carrying customer.
func WithCustomer(ctx context.Context, customer domain.Customer) context.Context {
	return context.WithValue(ctx, customerKey{}, customer)
}

// Resolver implements ports.CustomerResolver from the request context.
type Resolver struct{}

// NewResolver creates a context based customer resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// CurrentCustomer returns the customer attached with WithCustomer.
func (r *Resolver) CurrentCustomer(ctx context.Context) (*domain.Customer, error) {
	customer, ok := ctx.Value(customerKey{}).(domain.Customer)
	if !ok || customer.ID == "" {
		return nil, domain.ErrCustomerNotFound
	}
	return &customer, nil
}
