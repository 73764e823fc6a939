// Package domain contains the core business entities for the PayPal Pro add-on.
package domain

import "errors"

// Domain errors - represent business rule violations.
var (
	// ErrSecurityTokenInvalid marks a checkout or settings nonce that did not verify.
	ErrSecurityTokenInvalid = errors.New("security token invalid")

	// ErrGatewayFailure is returned when PayPal Pro rejects or fails a payment.
	ErrGatewayFailure = errors.New("payment gateway error")

	// ErrValidationFailure marks a settings post with empty required credential fields.
	ErrValidationFailure = errors.New("settings validation failed")

	// ErrStorageFailure is returned when a settings record or ledger entry could not be written.
	ErrStorageFailure = errors.New("storage failure")

	// ErrOptionNotFound is returned by options stores for absent keys.
	ErrOptionNotFound = errors.New("option not found")

	// ErrCustomerNotFound is returned when no shopper is attached to the request.
	ErrCustomerNotFound = errors.New("customer not found")
)

// ServiceError wraps errors with additional context.
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(err error, message, code string) *ServiceError {
	return &ServiceError{Err: err, Message: message, Code: code}
}
