package domain

// TransactionStatus is the status string PayPal Pro assigns to a transaction.
type TransactionStatus string

const (
	StatusSucceeded     TransactionStatus = "succeeded"
	StatusRefunded      TransactionStatus = "refunded"
	StatusPartialRefund TransactionStatus = "partial-refund"
	StatusNeedsResponse TransactionStatus = "needs_response"
	StatusUnderReview   TransactionStatus = "under_review"
	StatusWon           TransactionStatus = "won"
)

// UnknownStatusLabel is shown for any status not in the label table.
const UnknownStatusLabel = "Unknown"

var statusLabels = map[TransactionStatus]string{
	StatusSucceeded:     "Paid",
	StatusRefunded:      "Refunded",
	StatusPartialRefund: "Partially Refunded",
	StatusNeedsResponse: "Disputed: PayPal needs a response",
	StatusUnderReview:   "Disputed: Under review",
	StatusWon:           "Disputed: Won, Refunded",
}

// Label returns the human readable label, or "Unknown".
// Matching is exact and case-sensitive.
func (s TransactionStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return UnknownStatusLabel
}

// ClearedForDelivery reports whether goods may be fulfilled for this status.
func (s TransactionStatus) ClearedForDelivery() bool {
	switch s {
	case StatusSucceeded, StatusPartialRefund, StatusWon:
		return true
	default:
		return false
	}
}

// String representation (for logging)
func (s TransactionStatus) String() string {
	return string(s)
}
