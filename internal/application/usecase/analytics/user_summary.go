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

// UserSummaryInput represents the input for the cross-vault user summary.
type UserSummaryInput struct {
	UserID uuid.UUID
}

// UserSummaryOutput aggregates the user's active vaults and recent activity.
type UserSummaryOutput struct {
	TotalAllocated     decimal.Decimal
	TotalSpent         decimal.Decimal
	TotalRemaining     decimal.Decimal
	UsagePercentage    float64
	ActiveVaultCount   int
	RecentTransactions []*entity.TransactionWithVault
}

// UserSummaryUseCase derives the user's overall budget position. Calling it
// twice without an intervening mutation returns identical results.
type UserSummaryUseCase struct {
	vaultRepository       adapter.VaultRepository
	transactionRepository adapter.TransactionRepository
}

// NewUserSummaryUseCase creates a new UserSummaryUseCase instance.
func NewUserSummaryUseCase(
	vaultRepository adapter.VaultRepository,
	transactionRepository adapter.TransactionRepository,
) *UserSummaryUseCase {
	return &UserSummaryUseCase{
		vaultRepository:       vaultRepository,
		transactionRepository: transactionRepository,
	}
}

// Execute computes the summary.
func (uc *UserSummaryUseCase) Execute(ctx context.Context, input UserSummaryInput) (*UserSummaryOutput, error) {
	vaults, err := uc.vaultRepository.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}

	totalAllocated := decimal.Zero
	totalSpent := decimal.Zero
	for _, v := range vaults {
		totalAllocated = totalAllocated.Add(v.AllocatedAmount)
		totalSpent = totalSpent.Add(v.SpentAmount)
	}

	balance := valueobject.DeriveBalance(totalAllocated, totalSpent)

	recent, err := uc.transactionRepository.FindByFilter(ctx,
		adapter.TransactionFilter{UserID: input.UserID},
		adapter.TransactionPagination{Limit: 5},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	return &UserSummaryOutput{
		TotalAllocated:     totalAllocated,
		TotalSpent:         totalSpent,
		TotalRemaining:     balance.Remaining,
		UsagePercentage:    balance.UsagePercentage,
		ActiveVaultCount:   len(vaults),
		RecentTransactions: recent.Transactions,
	}, nil
}
