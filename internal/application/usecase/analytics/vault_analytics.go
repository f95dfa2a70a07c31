package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	"github.com/vaultpay/backend/internal/domain/valueobject"
)

// VaultAnalyticsInput represents the input for single-vault analytics.
type VaultAnalyticsInput struct {
	UserID  uuid.UUID
	VaultID uuid.UUID
	Range   adapter.AnalyticsRange
}

// VaultAnalyticsOutput represents the output of single-vault analytics.
type VaultAnalyticsOutput struct {
	Vault              *entity.Vault
	Balance            valueobject.VaultBalance
	SpentInRange       decimal.Decimal
	TransactionCount   int64
	AverageTransaction decimal.Decimal
	RecentTransactions []*entity.Transaction
}

// VaultAnalyticsUseCase derives spend statistics for one vault.
type VaultAnalyticsUseCase struct {
	vaultRepository       adapter.VaultRepository
	transactionRepository adapter.TransactionRepository
	analyticsRepository   adapter.AnalyticsRepository
}

// NewVaultAnalyticsUseCase creates a new VaultAnalyticsUseCase instance.
func NewVaultAnalyticsUseCase(
	vaultRepository adapter.VaultRepository,
	transactionRepository adapter.TransactionRepository,
	analyticsRepository adapter.AnalyticsRepository,
) *VaultAnalyticsUseCase {
	return &VaultAnalyticsUseCase{
		vaultRepository:       vaultRepository,
		transactionRepository: transactionRepository,
		analyticsRepository:   analyticsRepository,
	}
}

// Execute computes analytics for the vault, archived vaults included.
func (uc *VaultAnalyticsUseCase) Execute(ctx context.Context, input VaultAnalyticsInput) (*VaultAnalyticsOutput, error) {
	vault, err := uc.vaultRepository.FindByID(ctx, input.VaultID, input.UserID)
	if err != nil {
		return nil, err
	}

	totals, err := uc.analyticsRepository.VaultTotals(ctx, vault.ID, input.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vault totals: %w", err)
	}

	average := decimal.Zero
	if totals.TransactionCount > 0 {
		average = totals.Amount.Div(decimal.NewFromInt(totals.TransactionCount)).Round(2)
	}

	recent, err := uc.transactionRepository.FindRecentByVault(ctx, vault.ID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	return &VaultAnalyticsOutput{
		Vault:              vault,
		Balance:            valueobject.DeriveBalance(vault.AllocatedAmount, vault.SpentAmount),
		SpentInRange:       totals.Amount,
		TransactionCount:   totals.TransactionCount,
		AverageTransaction: average,
		RecentTransactions: recent,
	}, nil
}
