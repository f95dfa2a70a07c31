// Package valueobject defines pure value types shared across the domain.
package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDeriveBalance(t *testing.T) {
	t.Run("remaining is allocated minus spent", func(t *testing.T) {
		b := DeriveBalance(decimal.NewFromInt(500), decimal.NewFromInt(120))

		if !b.Remaining.Equal(decimal.NewFromInt(380)) {
			t.Errorf("expected remaining 380, got %s", b.Remaining)
		}
		if b.UsagePercentage != 24 {
			t.Errorf("expected usage 24, got %v", b.UsagePercentage)
		}
	})

	t.Run("usage is 0 when nothing is allocated", func(t *testing.T) {
		b := DeriveBalance(decimal.Zero, decimal.Zero)

		if b.UsagePercentage != 0 {
			t.Errorf("expected usage 0, got %v", b.UsagePercentage)
		}
		if !b.Remaining.IsZero() {
			t.Errorf("expected remaining 0, got %s", b.Remaining)
		}
	})

	t.Run("usage rounds to 2 decimal places", func(t *testing.T) {
		b := DeriveBalance(decimal.NewFromInt(3), decimal.NewFromInt(1))

		if b.UsagePercentage != 33.33 {
			t.Errorf("expected usage 33.33, got %v", b.UsagePercentage)
		}
	})

	t.Run("fully spent vault reads 100 percent with zero remaining", func(t *testing.T) {
		b := DeriveBalance(decimal.NewFromInt(250), decimal.NewFromInt(250))

		if b.UsagePercentage != 100 {
			t.Errorf("expected usage 100, got %v", b.UsagePercentage)
		}
		if !b.Remaining.IsZero() {
			t.Errorf("expected remaining 0, got %s", b.Remaining)
		}
	})
}

func TestPercentageOf(t *testing.T) {
	if got := PercentageOf(decimal.NewFromInt(25), decimal.NewFromInt(200)); got != 12.5 {
		t.Errorf("expected 12.5, got %v", got)
	}
	if got := PercentageOf(decimal.NewFromInt(10), decimal.Zero); got != 0 {
		t.Errorf("expected 0 for zero total, got %v", got)
	}
	if got := PercentageOf(decimal.NewFromInt(10), decimal.NewFromInt(-5)); got != 0 {
		t.Errorf("expected 0 for negative total, got %v", got)
	}
}
