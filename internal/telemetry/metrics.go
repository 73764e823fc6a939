package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transaction outcomes.
const (
	OutcomeSucceeded     = "succeeded"
	OutcomeInvalidToken  = "invalid_token"
	OutcomeNoCustomer    = "no_customer"
	OutcomeGatewayFailed = "gateway_failed"
	OutcomeLedgerFailed  = "ledger_failed"
)

// Settings save outcomes.
const (
	SaveSaved        = "saved"
	SaveInvalidToken = "invalid_token"
	SaveInvalid      = "invalid"
	SaveStorageError = "storage_error"
)

var (
	transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paypal_pro",
		Name:      "transactions_total",
		Help:      "Checkout attempts handled by the PayPal Pro add-on, by outcome.",
	}, []string{"outcome"})

	settingsSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paypal_pro",
		Name:      "settings_saves_total",
		Help:      "Settings form and wizard submissions, by outcome.",
	}, []string{"surface", "outcome"})
)

// ObserveTransaction counts one checkout attempt.
func ObserveTransaction(outcome string) {
	transactionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSettingsSave counts one settings submission. surface is "form" or "wizard".
func ObserveSettingsSave(surface, outcome string) {
	settingsSavesTotal.WithLabelValues(surface, outcome).Inc()
}
