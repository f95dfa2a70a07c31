package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
)

// ListAccountsInput represents the input for listing bank accounts.
type ListAccountsInput struct {
	UserID uuid.UUID
}

// ListAccountsOutput represents the output of listing bank accounts.
type ListAccountsOutput struct {
	Accounts []*entity.BankAccount
}

// ListAccountsUseCase handles listing a user's linked bank accounts.
type ListAccountsUseCase struct {
	accountRepository adapter.BankAccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepository adapter.BankAccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepository: accountRepository,
	}
}

// Execute lists all bank accounts linked by the user, primary first.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepository.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return &ListAccountsOutput{Accounts: accounts}, nil
}
