// Package error defines domain-specific errors for the VaultPay application.
package error

import "errors"

// Vault domain errors.
var (
	// ErrVaultNotFound is returned when a vault does not exist, is archived,
	// or is not owned by the caller.
	ErrVaultNotFound = errors.New("vault not found")

	// ErrInvalidAllocationAmount is returned when an allocation amount is not positive.
	ErrInvalidAllocationAmount = errors.New("allocation must be greater than 0")

	// ErrInsufficientUnallocatedBalance is returned when an allocation exceeds the
	// account's unallocated headroom.
	ErrInsufficientUnallocatedBalance = errors.New("insufficient unallocated balance")

	// ErrBelowSpentAmount is returned when a reallocation would set the ceiling
	// below the amount already spent.
	ErrBelowSpentAmount = errors.New("cannot allocate less than spent amount")

	// ErrInvalidBudgetPeriod is returned when the budget period is not a known value.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")
)

// VaultErrorCode defines error codes for vault errors.
// Format: VLT-XXYYYY where XX is category and YYYY is specific error.
type VaultErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAllocationAmount VaultErrorCode = "VLT-010001"
	ErrCodeInvalidBudgetPeriod     VaultErrorCode = "VLT-010002"
	ErrCodeMissingVaultFields      VaultErrorCode = "VLT-010003"

	// Not found errors (02XXXX)
	ErrCodeVaultNotFound VaultErrorCode = "VLT-020001"

	// Business rule errors (03XXXX)
	ErrCodeInsufficientUnallocatedBalance VaultErrorCode = "VLT-030001"
	ErrCodeBelowSpentAmount               VaultErrorCode = "VLT-030002"
)

// VaultError represents a vault error with code and message.
type VaultError struct {
	Code    VaultErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *VaultError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *VaultError) Unwrap() error {
	return e.Err
}

// NewVaultError creates a new VaultError with the given code and message.
func NewVaultError(code VaultErrorCode, message string, err error) *VaultError {
	return &VaultError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
