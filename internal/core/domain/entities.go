// Package domain contains the core business entities for the PayPal Pro add-on.
// This is the innermost layer - no external dependencies.
package domain

import "time"

// MethodSlug identifies this payment method to the host platform.
const MethodSlug = "paypal_pro"

// CheckoutNonceAction is the action the purchase dialog nonce is bound to.
const CheckoutNonceAction = "paypal_pro-checkout"

// CheckoutNonceField is the purchase dialog field carrying the checkout nonce.
const CheckoutNonceField = "ite-paypal_pro-purchase-dialog-nonce"

// CartItem is a single line of the host's cart.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// PaymentCard holds the card and billing details collected by the purchase dialog.
type PaymentCard struct {
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVV         string `json:"cvv"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// CartContents is the narrow view of the host's transaction object.
// Only the fields the gateway and the ledger need are modelled.
type CartContents struct {
	Total       float64     `json:"total"`
	Currency    string      `json:"currency"`
	Description string      `json:"description"`
	Items       []CartItem  `json:"items"`
	Card        PaymentCard `json:"card"`
}

// Customer is the shopper resolved from the host session.
type Customer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PaymentResult is what the gateway returns for a successful charge.
type PaymentResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// Transaction is one entry in the host ledger.
type Transaction struct {
	ID         string            `json:"id"`
	Method     string            `json:"method"`
	ExternalID string            `json:"external_id"`
	Status     TransactionStatus `json:"status"`
	CustomerID string            `json:"customer_id"`
	Cart       CartContents      `json:"cart"`
	CreatedAt  time.Time         `json:"created_at"`
}

// TransactionRequest carries everything the checkout hook posts for one attempt.
type TransactionRequest struct {
	Nonce string
	Cart  CartContents
	// ClientIP is the shopper's address, forwarded to the gateway for fraud checks.
	ClientIP string
}
