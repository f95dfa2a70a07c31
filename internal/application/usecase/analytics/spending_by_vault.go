package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/valueobject"
)

// SpendingByVaultInput represents the input for per-vault spend aggregation.
type SpendingByVaultInput struct {
	UserID uuid.UUID
	Range  adapter.AnalyticsRange
}

// VaultSpend is one vault's bucket: its share of total spend and how much of
// its own allocation the spend consumed.
type VaultSpend struct {
	VaultID           uuid.UUID
	VaultName         string
	VaultIcon         string
	Amount            decimal.Decimal
	PercentageOfSpend float64
	UsagePercentage   float64
	TransactionCount  int64
}

// SpendingByVaultOutput represents the output of per-vault aggregation.
type SpendingByVaultOutput struct {
	Vaults     []VaultSpend
	TotalSpent decimal.Decimal
}

// SpendingByVaultUseCase groups completed spend by vault.
type SpendingByVaultUseCase struct {
	analyticsRepository adapter.AnalyticsRepository
}

// NewSpendingByVaultUseCase creates a new SpendingByVaultUseCase instance.
func NewSpendingByVaultUseCase(analyticsRepository adapter.AnalyticsRepository) *SpendingByVaultUseCase {
	return &SpendingByVaultUseCase{
		analyticsRepository: analyticsRepository,
	}
}

// Execute aggregates spend per vault, sorted descending by amount.
func (uc *SpendingByVaultUseCase) Execute(ctx context.Context, input SpendingByVaultInput) (*SpendingByVaultOutput, error) {
	rows, err := uc.analyticsRepository.SpendingByVault(ctx, input.UserID, input.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by vault: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}

	vaults := make([]VaultSpend, 0, len(rows))
	for _, row := range rows {
		vaults = append(vaults, VaultSpend{
			VaultID:           row.VaultID,
			VaultName:         row.VaultName,
			VaultIcon:         row.VaultIcon,
			Amount:            row.Amount,
			PercentageOfSpend: valueobject.PercentageOf(row.Amount, total),
			UsagePercentage:   valueobject.PercentageOf(row.Amount, row.AllocatedAmount),
			TransactionCount:  row.TransactionCount,
		})
	}

	return &SpendingByVaultOutput{Vaults: vaults, TotalSpent: total}, nil
}
