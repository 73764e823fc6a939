// Package service implements the core business logic.
package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
	"github.com/exchangeaddons/paypal-pro/internal/core/ports"
	"github.com/exchangeaddons/paypal-pro/internal/telemetry"
)

// RefundURL is where merchants are sent to issue refunds.
// It is a static link, not a deep link to the transaction.
const RefundURL = "https://www.paypal.com/"

// MsgInvalidCheckoutToken is shown when the purchase dialog nonce does not verify.
const MsgInvalidCheckoutToken = "Transaction Failed, unable to verify security token."

// MsgCustomerNotFound is shown when the checkout has no shopper attached.
const MsgCustomerNotFound = "Transaction Failed, unable to find the current customer."

// MsgLedgerFailed is shown when the charge went through but could not be recorded.
const MsgLedgerFailed = "Transaction Failed, unable to record the transaction."

// TransactionService answers the host's per-checkout questions about PayPal Pro.
type TransactionService struct {
	gateway   ports.PaymentGateway
	nonces    ports.NonceService
	customers ports.CustomerResolver
	ledger    ports.Ledger
	dialog    ports.PurchaseDialog
	logger    *zap.Logger
	now       func() time.Time
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	gateway ports.PaymentGateway,
	nonces ports.NonceService,
	customers ports.CustomerResolver,
	ledger ports.Ledger,
	dialog ports.PurchaseDialog,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		gateway:   gateway,
		nonces:    nonces,
		customers: customers,
		ledger:    ledger,
		dialog:    dialog,
		logger:    logger,
		now:       time.Now,
	}
}

// RefundURL returns the refund link for PayPal Pro transactions.
func (s *TransactionService) RefundURL() string {
	return RefundURL
}

// ProcessTransaction charges the cart and records a ledger entry.
//
// prior is the value handed down the host's filter chain; a non-empty value
// means another add-on already handled this checkout and it is returned as is.
// The empty string is the failure sentinel. Every failure is reported through
// msgs and never returned as an error.
func (s *TransactionService) ProcessTransaction(ctx context.Context, prior string, req domain.TransactionRequest, msgs ports.MessageQueue) string {
	if prior != "" || req.Nonce == "" {
		return prior
	}

	if !s.nonces.Verify(req.Nonce, domain.CheckoutNonceAction) {
		s.logger.Warn("Checkout security token rejected", zap.Error(
			domain.NewServiceError(domain.ErrSecurityTokenInvalid, "checkout nonce rejected", "INVALID_NONCE")))
		telemetry.ObserveTransaction(telemetry.OutcomeInvalidToken)
		msgs.AddMessage(domain.MessageError, MsgInvalidCheckoutToken)
		return ""
	}

	customer, err := s.customers.CurrentCustomer(ctx)
	if err != nil {
		s.logger.Warn("Checkout without a customer", zap.Error(err))
		telemetry.ObserveTransaction(telemetry.OutcomeNoCustomer)
		msgs.AddMessage(domain.MessageError, MsgCustomerNotFound)
		return ""
	}

	extra := map[string]string{}
	if req.ClientIP != "" {
		extra["ip_address"] = req.ClientIP
	}

	result, err := s.gateway.DoPayment(ctx, *customer, req.Cart, extra)
	if err != nil {
		s.logger.Error("PayPal Pro payment failed",
			zap.String("customer_id", customer.ID),
			zap.Float64("total", req.Cart.Total),
			zap.Error(err),
		)
		telemetry.ObserveTransaction(telemetry.OutcomeGatewayFailed)
		msgs.AddMessage(domain.MessageError, gatewayMessage(err))
		return ""
	}

	id, err := s.ledger.AddTransaction(ctx, domain.Transaction{
		Method:     domain.MethodSlug,
		ExternalID: result.ID,
		Status:     domain.StatusSucceeded,
		CustomerID: customer.ID,
		Cart:       req.Cart,
		CreatedAt:  s.now(),
	})
	if err != nil {
		s.logger.Error("Failed to record PayPal Pro transaction",
			zap.String("payment_id", result.ID),
			zap.String("customer_id", customer.ID),
			zap.Error(err),
		)
		telemetry.ObserveTransaction(telemetry.OutcomeLedgerFailed)
		msgs.AddMessage(domain.MessageError, MsgLedgerFailed)
		return ""
	}

	s.logger.Info("PayPal Pro transaction recorded",
		zap.String("transaction_id", id),
		zap.String("payment_id", result.ID),
		zap.String("customer_id", customer.ID),
		zap.Float64("total", req.Cart.Total),
	)
	telemetry.ObserveTransaction(telemetry.OutcomeSucceeded)

	return id
}

// MakePaymentButton returns the purchase dialog markup, or "" for free carts.
func (s *TransactionService) MakePaymentButton(ctx context.Context, cartTotal float64) string {
	if cartTotal <= 0 || math.IsNaN(cartTotal) {
		return ""
	}

	html, err := s.dialog.Render(ctx, domain.MethodSlug)
	if err != nil {
		s.logger.Error("Failed to render purchase dialog", zap.Error(err))
		return ""
	}
	return html
}

// StatusLabel translates a PayPal Pro status into a display label.
func (s *TransactionService) StatusLabel(status string) string {
	return domain.TransactionStatus(status).Label()
}

// IsClearedForDelivery reports whether a transaction in status may be fulfilled.
func (s *TransactionService) IsClearedForDelivery(status string) bool {
	return domain.TransactionStatus(status).ClearedForDelivery()
}

// gatewayMessage extracts the text shown to the shopper for a gateway error.
func gatewayMessage(err error) string {
	var svcErr *domain.ServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return err.Error()
}
