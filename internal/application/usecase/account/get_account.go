package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
)

// GetAccountInput represents the input for fetching a single bank account.
type GetAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// GetAccountOutput represents the output of fetching a single bank account.
type GetAccountOutput struct {
	Account *entity.BankAccount
}

// GetAccountUseCase handles fetching a single bank account by id.
type GetAccountUseCase struct {
	accountRepository adapter.BankAccountRepository
}

// NewGetAccountUseCase creates a new GetAccountUseCase instance.
func NewGetAccountUseCase(accountRepository adapter.BankAccountRepository) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepository: accountRepository,
	}
}

// Execute fetches the account, scoped to the owning user.
func (uc *GetAccountUseCase) Execute(ctx context.Context, input GetAccountInput) (*GetAccountOutput, error) {
	account, err := uc.accountRepository.FindByID(ctx, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetAccountOutput{Account: account}, nil
}
