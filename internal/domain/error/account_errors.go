// Package error defines domain-specific errors for the VaultPay application.
package error

import "errors"

// Bank account domain errors.
var (
	// ErrAccountNotFound is returned when an account does not exist or is not owned by the caller.
	ErrAccountNotFound = errors.New("bank account not found")

	// ErrPrimaryAccountNotFound is returned when the user has no primary account.
	ErrPrimaryAccountNotFound = errors.New("primary account not found")

	// ErrAccountHasActiveVaults is returned when unlinking an account that still backs active vaults.
	ErrAccountHasActiveVaults = errors.New("cannot delete account linked to active vaults")

	// ErrInsufficientAccountBalance is returned when a balance update would drop the balance
	// below zero or below the amount already allocated to active vaults.
	ErrInsufficientAccountBalance = errors.New("insufficient account balance")

	// ErrInvalidBalanceAmount is returned when a balance update amount is zero or malformed.
	ErrInvalidBalanceAmount = errors.New("invalid balance amount")
)

// AccountErrorCode defines error codes for bank account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBalanceAmount AccountErrorCode = "ACC-010001"
	ErrCodeMissingAccountFields AccountErrorCode = "ACC-010002"

	// Not found errors (02XXXX)
	ErrCodeAccountNotFound        AccountErrorCode = "ACC-020001"
	ErrCodePrimaryAccountNotFound AccountErrorCode = "ACC-020002"

	// Business rule errors (03XXXX)
	ErrCodeAccountHasActiveVaults     AccountErrorCode = "ACC-030001"
	ErrCodeInsufficientAccountBalance AccountErrorCode = "ACC-030002"
)

// AccountError represents a bank account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
