// Package analytics contains the read-side reconciliation and summary use
// cases. Nothing in this package mutates the ledger; every figure is derived
// fresh from committed entries on each call.
package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/valueobject"
)

// SpendingByCategoryInput represents the input for category spend aggregation.
type SpendingByCategoryInput struct {
	UserID uuid.UUID
	Range  adapter.AnalyticsRange
}

// CategorySpend is one category bucket with its share of total spend.
type CategorySpend struct {
	VaultType        string
	Amount           decimal.Decimal
	Percentage       float64
	TransactionCount int64
}

// SpendingByCategoryOutput represents the output of category aggregation.
type SpendingByCategoryOutput struct {
	Categories []CategorySpend
	TotalSpent decimal.Decimal
}

// SpendingByCategoryUseCase groups completed spend by the owning vault's type.
type SpendingByCategoryUseCase struct {
	analyticsRepository adapter.AnalyticsRepository
}

// NewSpendingByCategoryUseCase creates a new SpendingByCategoryUseCase instance.
func NewSpendingByCategoryUseCase(analyticsRepository adapter.AnalyticsRepository) *SpendingByCategoryUseCase {
	return &SpendingByCategoryUseCase{
		analyticsRepository: analyticsRepository,
	}
}

// Execute aggregates spend per category, sorted descending by amount.
func (uc *SpendingByCategoryUseCase) Execute(ctx context.Context, input SpendingByCategoryInput) (*SpendingByCategoryOutput, error) {
	rows, err := uc.analyticsRepository.SpendingByCategory(ctx, input.UserID, input.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}

	categories := make([]CategorySpend, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, CategorySpend{
			VaultType:        row.VaultType,
			Amount:           row.Amount,
			Percentage:       valueobject.PercentageOf(row.Amount, total),
			TransactionCount: row.TransactionCount,
		})
	}

	return &SpendingByCategoryOutput{Categories: categories, TotalSpent: total}, nil
}
