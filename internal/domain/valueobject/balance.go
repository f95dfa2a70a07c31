// Package valueobject defines pure value types shared across the domain.
package valueobject

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// VaultBalance is the derived view of a vault's budget. It is never stored;
// every component derives it from (allocated, spent) through DeriveBalance so
// rounding and the zero-allocation edge case are handled in exactly one place.
type VaultBalance struct {
	Allocated decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal

	// UsagePercentage is rounded to 2 decimal places for display. Invariant
	// checks never use it; they compare the exact decimal fields.
	UsagePercentage float64
}

// DeriveBalance computes the remaining budget and usage percentage for a
// vault. Usage is defined as 0 when nothing is allocated.
func DeriveBalance(allocated, spent decimal.Decimal) VaultBalance {
	remaining := allocated.Sub(spent)

	var usage float64
	if allocated.IsPositive() {
		usage, _ = spent.Mul(hundred).Div(allocated).Round(2).Float64()
	}

	return VaultBalance{
		Allocated:       allocated,
		Spent:           spent,
		Remaining:       remaining,
		UsagePercentage: usage,
	}
}

// PercentageOf returns part/total*100 rounded to 2 decimal places, and 0 when
// total is not positive. Used for share-of-spend figures in summaries.
func PercentageOf(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	pct, _ := part.Mul(hundred).Div(total).Round(2).Float64()
	return pct
}
