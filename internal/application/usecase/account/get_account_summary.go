package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/valueobject"
)

// GetAccountSummaryInput represents the input for an account summary.
type GetAccountSummaryInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// GetAccountSummaryOutput aggregates balances for one account: the nominal
// balance, the sum allocated to active vaults, and the unallocated remainder.
type GetAccountSummaryOutput struct {
	AccountID           uuid.UUID
	Balance             decimal.Decimal
	AllocatedAmount     decimal.Decimal
	UnallocatedAmount   decimal.Decimal
	AllocatedPercentage float64
	ActiveVaultCount    int64
}

// GetAccountSummaryUseCase derives an account's allocation summary from
// current vault state rather than any cached figure.
type GetAccountSummaryUseCase struct {
	accountRepository adapter.BankAccountRepository
	vaultRepository   adapter.VaultRepository
}

// NewGetAccountSummaryUseCase creates a new GetAccountSummaryUseCase instance.
func NewGetAccountSummaryUseCase(
	accountRepository adapter.BankAccountRepository,
	vaultRepository adapter.VaultRepository,
) *GetAccountSummaryUseCase {
	return &GetAccountSummaryUseCase{
		accountRepository: accountRepository,
		vaultRepository:   vaultRepository,
	}
}

// Execute computes the summary for the given account.
func (uc *GetAccountSummaryUseCase) Execute(ctx context.Context, input GetAccountSummaryInput) (*GetAccountSummaryOutput, error) {
	account, err := uc.accountRepository.FindByID(ctx, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	allocated, err := uc.vaultRepository.SumAllocatedByAccount(ctx, account.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum allocations: %w", err)
	}

	vaultCount, err := uc.vaultRepository.CountActiveByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count vaults: %w", err)
	}

	return &GetAccountSummaryOutput{
		AccountID:           account.ID,
		Balance:             account.Balance,
		AllocatedAmount:     allocated,
		UnallocatedAmount:   account.Balance.Sub(allocated),
		AllocatedPercentage: valueobject.PercentageOf(allocated, account.Balance),
		ActiveVaultCount:    vaultCount,
	}, nil
}
