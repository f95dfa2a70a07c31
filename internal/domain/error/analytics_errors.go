// Package error defines domain-specific errors for the VaultPay application.
package error

import "errors"

// Analytics errors. The read side has no coded wrapper type; these sentinels
// map straight to validation responses.
var (
	// ErrInvalidDateRange is returned when a report range or granularity is malformed.
	ErrInvalidDateRange = errors.New("invalid date range")
)
