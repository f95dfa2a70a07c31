package vault

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/valueobject"
)

// GetVaultSummaryInput represents the input for a per-account vault summary.
type GetVaultSummaryInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// GetVaultSummaryOutput aggregates the account's active vaults.
type GetVaultSummaryOutput struct {
	AccountID           uuid.UUID
	AccountBalance      decimal.Decimal
	TotalAllocated      decimal.Decimal
	TotalSpent          decimal.Decimal
	TotalRemaining      decimal.Decimal
	UnallocatedAmount   decimal.Decimal
	AllocatedPercentage float64
	Vaults              []VaultView
}

// GetVaultSummaryUseCase aggregates allocation figures across an account's
// active vaults, always deriving from current vault rows.
type GetVaultSummaryUseCase struct {
	accountRepository adapter.BankAccountRepository
	vaultRepository   adapter.VaultRepository
}

// NewGetVaultSummaryUseCase creates a new GetVaultSummaryUseCase instance.
func NewGetVaultSummaryUseCase(
	accountRepository adapter.BankAccountRepository,
	vaultRepository adapter.VaultRepository,
) *GetVaultSummaryUseCase {
	return &GetVaultSummaryUseCase{
		accountRepository: accountRepository,
		vaultRepository:   vaultRepository,
	}
}

// Execute computes the summary for the given account.
func (uc *GetVaultSummaryUseCase) Execute(ctx context.Context, input GetVaultSummaryInput) (*GetVaultSummaryOutput, error) {
	account, err := uc.accountRepository.FindByID(ctx, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	vaults, err := uc.vaultRepository.FindActiveByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}

	totalAllocated := decimal.Zero
	totalSpent := decimal.Zero
	views := make([]VaultView, 0, len(vaults))
	for _, v := range vaults {
		totalAllocated = totalAllocated.Add(v.AllocatedAmount)
		totalSpent = totalSpent.Add(v.SpentAmount)
		views = append(views, VaultView{
			Vault:   v,
			Balance: valueobject.DeriveBalance(v.AllocatedAmount, v.SpentAmount),
		})
	}

	return &GetVaultSummaryOutput{
		AccountID:           account.ID,
		AccountBalance:      account.Balance,
		TotalAllocated:      totalAllocated,
		TotalSpent:          totalSpent,
		TotalRemaining:      totalAllocated.Sub(totalSpent),
		UnallocatedAmount:   account.Balance.Sub(totalAllocated),
		AllocatedPercentage: valueobject.PercentageOf(totalAllocated, account.Balance),
		Vaults:              views,
	}, nil
}
