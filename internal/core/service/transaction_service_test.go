package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
)

type txnFixture struct {
	svc     *TransactionService
	nonces  *fakeNonces
	gateway *fakeGateway
	ledger  *fakeLedger
	msgs    *domain.Messages
}

func newTxnFixture() *txnFixture {
	f := &txnFixture{
		nonces:  newFakeNonces(),
		gateway: &fakeGateway{result: &domain.PaymentResult{ID: "8AB12345", Success: true}},
		ledger:  &fakeLedger{},
		msgs:    &domain.Messages{},
	}
	f.svc = NewTransactionService(
		f.gateway,
		f.nonces,
		fakeCustomers{customer: &domain.Customer{ID: "42"}},
		f.ledger,
		fakeDialog{html: "<form>dialog</form>"},
		zap.NewNop(),
	)
	return f
}

var cart = domain.CartContents{Total: 25, Currency: "USD"}

func TestRefundURL(t *testing.T) {
	f := newTxnFixture()
	assert.Equal(t, "https://www.paypal.com/", f.svc.RefundURL())
}

func TestProcessTransactionAlreadyHandled(t *testing.T) {
	f := newTxnFixture()
	token := f.nonces.Issue(domain.CheckoutNonceAction)

	got := f.svc.ProcessTransaction(context.Background(), "other-addon-txn", domain.TransactionRequest{Nonce: token, Cart: cart}, f.msgs)

	assert.Equal(t, "other-addon-txn", got)
	assert.Zero(t, f.gateway.calls)
	assert.Empty(t, f.ledger.entries)
	assert.Empty(t, f.msgs.All())
}

func TestProcessTransactionWithoutToken(t *testing.T) {
	f := newTxnFixture()

	got := f.svc.ProcessTransaction(context.Background(), "", domain.TransactionRequest{Cart: cart}, f.msgs)

	assert.Equal(t, "", got)
	assert.Zero(t, f.gateway.calls)
	assert.Empty(t, f.ledger.entries)
}

func TestProcessTransactionInvalidToken(t *testing.T) {
	f := newTxnFixture()
	settingsToken := f.nonces.Issue(SettingsNonceAction)

	for _, token := range []string{"forged", settingsToken} {
		msgs := &domain.Messages{}
		got := f.svc.ProcessTransaction(context.Background(), "", domain.TransactionRequest{Nonce: token, Cart: cart}, msgs)

		assert.Equal(t, "", got)
		assert.Equal(t, []string{MsgInvalidCheckoutToken}, msgs.Errors())
	}
	assert.Zero(t, f.gateway.calls)
	assert.Empty(t, f.ledger.entries)
}

func TestProcessTransactionInvalidTokenIsLogged(t *testing.T) {
	f := newTxnFixture()
	core, logs := observer.New(zap.WarnLevel)
	f.svc.logger = zap.New(core)

	f.svc.ProcessTransaction(context.Background(), "", domain.TransactionRequest{Nonce: "forged", Cart: cart}, f.msgs)

	entries := logs.FilterMessage("Checkout security token rejected").All()
	require.Len(t, entries, 1)
	logged, ok := entries[0].ContextMap()["error"]
	require.True(t, ok)
	assert.Contains(t, logged, "security token invalid")
}

func TestProcessTransactionGatewayFailure(t *testing.T) {
	f := newTxnFixture()
	f.gateway.result = nil
	f.gateway.err = domain.NewServiceError(domain.ErrGatewayFailure, "This transaction cannot be processed.", "15005")

	token := f.nonces.Issue(domain.CheckoutNonceAction)
	got := f.svc.ProcessTransaction(context.Background(), "", domain.TransactionRequest{Nonce: token, Cart: cart}, f.msgs)

	assert.Equal(t, "", got)
	require.Len(t, f.msgs.Errors(), 1)
	assert.Contains(t, f.msgs.Errors()[0], "This transaction cannot be processed.")
	assert.Empty(t, f.ledger.entries)
}

func TestProcessTransactionPlainGatewayError(t *testing.T) {
	f := newTxnFixture()
	f.gateway.result = nil
	f.gateway.err = errBoom

	token := f.nonces.Issue(domain.CheckoutNonceAction)
	got := f.svc.ProcessTransaction(context.Background(), "", domain.TransactionRequest{Nonce: token, Cart: cart}, f.msgs)

	assert.Equal(t, "", got)
	assert.Equal(t, []string{"boom"}, f.msgs.Errors())
	assert.Empty(t, f.ledger.entries)
}

func TestProcessTransactionWithoutCustomer(t *testing.T) {
	f := newTxnFixture()
	f.svc.customers = fakeCustomers{}

	token := f.nonces.Issue(domain.CheckoutNonceAction)
	got := f.svc.ProcessTransaction(context.Background(), "", domain.TransactionRequest{Nonce: token, Cart: cart}, f.msgs)

	assert.Equal(t, "", got)
	assert.Equal(t, []string{MsgCustomerNotFound}, f.msgs.Errors())
	assert.Zero(t, f.gateway.calls)
}

func TestProcessTransactionLedgerFailure(t *testing.T) {
	f := newTxnFixture()
	f.ledger.err = errBoom

	token := f.nonces.Issue(domain.CheckoutNonceAction)
	got := f.svc.ProcessTransaction(context.Background(), "", domain.TransactionRequest{Nonce: token, Cart: cart}, f.msgs)

	assert.Equal(t, "", got)
	assert.Equal(t, []string{MsgLedgerFailed}, f.msgs.Errors())
}

func TestProcessTransactionSuccess(t *testing.T) {
	f := newTxnFixture()

	token := f.nonces.Issue(domain.CheckoutNonceAction)
	got := f.svc.ProcessTransaction(context.Background(), "", domain.TransactionRequest{Nonce: token, Cart: cart}, f.msgs)

	assert.Equal(t, "txn-1", got)
	assert.Empty(t, f.msgs.All())
	assert.Equal(t, 1, f.gateway.calls)
	assert.Empty(t, f.gateway.extra)

	require.Len(t, f.ledger.entries, 1)
	entry := f.ledger.entries[0]
	assert.Equal(t, "paypal_pro", entry.Method)
	assert.Equal(t, domain.StatusSucceeded, entry.Status)
	assert.Equal(t, "8AB12345", entry.ExternalID)
	assert.Equal(t, "42", entry.CustomerID)
	assert.Equal(t, cart, entry.Cart)
}

func TestProcessTransactionForwardsClientIP(t *testing.T) {
	f := newTxnFixture()

	token := f.nonces.Issue(domain.CheckoutNonceAction)
	got := f.svc.ProcessTransaction(context.Background(), "", domain.TransactionRequest{
		Nonce:    token,
		Cart:     cart,
		ClientIP: "203.0.113.7",
	}, f.msgs)

	assert.Equal(t, "txn-1", got)
	assert.Equal(t, map[string]string{"ip_address": "203.0.113.7"}, f.gateway.extra)
}

func TestMakePaymentButton(t *testing.T) {
	f := newTxnFixture()
	ctx := context.Background()

	assert.Equal(t, "", f.svc.MakePaymentButton(ctx, 0))
	assert.Equal(t, "", f.svc.MakePaymentButton(ctx, -5))
	assert.Equal(t, "", f.svc.MakePaymentButton(ctx, math.NaN()))
	assert.Equal(t, "<form>dialog</form>", f.svc.MakePaymentButton(ctx, 0.01))

	f.svc.dialog = fakeDialog{err: errBoom}
	assert.Equal(t, "", f.svc.MakePaymentButton(ctx, 10))
}

func TestStatusLabel(t *testing.T) {
	f := newTxnFixture()

	tests := map[string]string{
		"succeeded":      "Paid",
		"refunded":       "Refunded",
		"partial-refund": "Partially Refunded",
		"needs_response": "Disputed: PayPal needs a response",
		"under_review":   "Disputed: Under review",
		"won":            "Disputed: Won, Refunded",
		"":               "Unknown",
		"Succeeded":      "Unknown",
		"pending":        "Unknown",
	}

	for status, want := range tests {
		assert.Equal(t, want, f.svc.StatusLabel(status), "status %q", status)
	}
}

func TestIsClearedForDelivery(t *testing.T) {
	f := newTxnFixture()

	tests := map[string]bool{
		"succeeded":      true,
		"partial-refund": true,
		"won":            true,
		"refunded":       false,
		"needs_response": false,
		"under_review":   false,
		"":               false,
		"WON":            false,
		"lost":           false,
	}

	for status, want := range tests {
		assert.Equal(t, want, f.svc.IsClearedForDelivery(status), "status %q", status)
	}
}
