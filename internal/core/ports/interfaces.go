// Package ports defines the interfaces (ports) for the PayPal Pro add-on.
// These are contracts that adapters must implement.
package ports

import (
	"context"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
)

// PaymentGateway charges a customer through PayPal Pro.
type PaymentGateway interface {
	// DoPayment charges the cart total. A nil error means the charge succeeded.
	DoPayment(ctx context.Context, customer domain.Customer, cart domain.CartContents, extra map[string]string) (*domain.PaymentResult, error)
}

// OptionsStore is the host's generic key/value options storage.
type OptionsStore interface {
	// Get returns the raw value or domain.ErrOptionNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// NonceService issues and verifies CSRF tokens bound to an action.
type NonceService interface {
	Issue(action string) string
	Verify(token, action string) bool
}

// CustomerResolver returns the shopper behind the current request.
type CustomerResolver interface {
	CurrentCustomer(ctx context.Context) (*domain.Customer, error)
}

// Ledger records transactions in the host.
type Ledger interface {
	// AddTransaction stores a new entry and returns its identifier.
	AddTransaction(ctx context.Context, txn domain.Transaction) (string, error)
}

// MessageQueue receives user-facing notices.
type MessageQueue interface {
	AddMessage(kind domain.MessageKind, text string)
}

// PurchaseDialog renders the host checkout dialog for a payment method.
type PurchaseDialog interface {
	Render(ctx context.Context, method string) (string, error)
}

// SettingsLoader returns the current gateway settings merged over defaults.
type SettingsLoader interface {
	Load(ctx context.Context) (domain.GatewaySettings, error)
}

// SettingsForm renders the admin settings page and the wizard fragment.
type SettingsForm interface {
	RenderPage(view domain.SettingsView) (string, error)
	RenderWizard(view domain.SettingsView) (string, error)
}
