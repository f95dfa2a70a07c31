// Package error defines domain-specific errors for the VaultPay application.
package error

import "errors"

// Ledger store errors.
var (
	// ErrStoreTimeout is returned when a transactional unit of work could not
	// complete within its bound. The unit rolled back entirely; allocation-style
	// operations are safe to retry from the pre-check step.
	ErrStoreTimeout = errors.New("ledger store timed out")

	// ErrStoreConflict is returned on transient contention between concurrent
	// units of work. Retriable in the same sense as ErrStoreTimeout.
	ErrStoreConflict = errors.New("ledger store conflict")

	// ErrDuplicateReference is returned when a unique reference or idempotency
	// key already exists in the ledger.
	ErrDuplicateReference = errors.New("duplicate ledger reference")
)

// LedgerErrorCode defines error codes for ledger store errors.
type LedgerErrorCode string

const (
	ErrCodeStoreTimeout       LedgerErrorCode = "LGR-040001"
	ErrCodeStoreConflict      LedgerErrorCode = "LGR-040002"
	ErrCodeDuplicateReference LedgerErrorCode = "LGR-030001"
)

// IsRetriable reports whether the error is transient store contention that is
// safe to retry from the pre-check step for read-validate-mutate operations.
func IsRetriable(err error) bool {
	return errors.Is(err, ErrStoreTimeout) || errors.Is(err, ErrStoreConflict)
}
