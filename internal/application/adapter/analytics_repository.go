// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/domain/entity"
)

// AnalyticsRange bounds an analytics query. Nil endpoints leave that side open.
type AnalyticsRange struct {
	Start *time.Time
	End   *time.Time
}

// CategorySpendRow is one aggregation bucket keyed by the owning vault's type.
type CategorySpendRow struct {
	VaultType        string
	Amount           decimal.Decimal
	TransactionCount int64
}

// VaultSpendRow is one aggregation bucket keyed by vault.
type VaultSpendRow struct {
	VaultID          uuid.UUID
	VaultName        string
	VaultIcon        string
	AllocatedAmount  decimal.Decimal
	Amount           decimal.Decimal
	TransactionCount int64
}

// VaultTotalsRow carries a single vault's spend aggregates.
type VaultTotalsRow struct {
	Amount           decimal.Decimal
	TransactionCount int64
}

// AnalyticsRepository is the read-side aggregation surface of the ledger. All
// queries consider only completed, non-allocation debit entries: the same
// population that backs the conservation check, so every report is derivable
// from committed ledger state alone.
type AnalyticsRepository interface {
	// SpendingByCategory groups spend by the owning vault's type, largest first.
	SpendingByCategory(ctx context.Context, userID uuid.UUID, r AnalyticsRange) ([]CategorySpendRow, error)

	// SpendingByVault groups spend per vault, largest first.
	SpendingByVault(ctx context.Context, userID uuid.UUID, r AnalyticsRange) ([]VaultSpendRow, error)

	// CompletedDebits returns the raw entries in range, oldest first. Time
	// bucketing happens in the use case so granularity is storage-agnostic.
	CompletedDebits(ctx context.Context, userID uuid.UUID, r AnalyticsRange) ([]*entity.Transaction, error)

	// VaultTotals aggregates spend for one vault in range.
	VaultTotals(ctx context.Context, vaultID uuid.UUID, r AnalyticsRange) (*VaultTotalsRow, error)
}
