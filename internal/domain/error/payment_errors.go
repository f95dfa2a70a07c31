// Package error defines domain-specific errors for the VaultPay application.
package error

import "errors"

// Payment domain errors.
var (
	// ErrTransactionNotFound is returned when a ledger entry does not exist or
	// is not owned by the caller.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidPaymentAmount is returned when a payment amount is not positive.
	ErrInvalidPaymentAmount = errors.New("amount must be greater than 0")

	// ErrAmountExceedsLimit is returned when a payment exceeds the per-transaction ceiling.
	ErrAmountExceedsLimit = errors.New("payment amount exceeds the per-transaction limit")

	// ErrInsufficientVaultBalance is returned when a payment exceeds the vault's
	// remaining budget. Checked twice: once as a fast pre-check and again inside
	// the atomic unit against a freshly-read row.
	ErrInsufficientVaultBalance = errors.New("insufficient vault balance")

	// ErrPaymentStateUnknown is returned when the ledger could not record the
	// outcome of a charge the gateway may already have completed. The payment
	// must not be blindly retried; the pending entry carries the idempotency key.
	ErrPaymentStateUnknown = errors.New("payment state unknown, reconcile before retrying")

	// ErrDuplicatePayment is returned when a concurrent request holds the same
	// idempotency key and its outcome is not yet recorded.
	ErrDuplicatePayment = errors.New("a payment with this idempotency key is already in flight")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPaymentAmount PaymentErrorCode = "PAY-010001"
	ErrCodeAmountExceedsLimit   PaymentErrorCode = "PAY-010002"
	ErrCodeMissingPaymentFields PaymentErrorCode = "PAY-010003"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound PaymentErrorCode = "PAY-020001"

	// Business rule errors (03XXXX)
	ErrCodeInsufficientVaultBalance PaymentErrorCode = "PAY-030001"
	ErrCodeDuplicatePayment         PaymentErrorCode = "PAY-030002"

	// System errors (04XXXX)
	ErrCodePaymentStateUnknown PaymentErrorCode = "PAY-040001"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error

	// Reference identifies the pending ledger entry when the outcome is unknown.
	Reference string
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
