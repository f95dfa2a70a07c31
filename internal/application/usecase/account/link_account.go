// Package account contains bank account lifecycle use cases.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
)

// LinkAccountInput represents the input for linking a bank account.
type LinkAccountInput struct {
	UserID            uuid.UUID
	AccountNumber     string
	IFSCCode          string
	BankName          string
	AccountHolderName string
	InitialBalance    decimal.Decimal
}

// LinkAccountOutput represents the output of linking a bank account.
type LinkAccountOutput struct {
	Account *entity.BankAccount
}

// LinkAccountUseCase handles bank account linking. In production this would
// verify the account against a bank API; here verification is stubbed on.
type LinkAccountUseCase struct {
	ledger adapter.Ledger
}

// NewLinkAccountUseCase creates a new LinkAccountUseCase instance.
func NewLinkAccountUseCase(ledger adapter.Ledger) *LinkAccountUseCase {
	return &LinkAccountUseCase{
		ledger: ledger,
	}
}

// Execute links a new bank account. The first account a user links becomes
// primary automatically; the count and the insert happen in one unit of work
// so two concurrent first links cannot both become primary.
func (uc *LinkAccountUseCase) Execute(ctx context.Context, input LinkAccountInput) (*LinkAccountOutput, error) {
	if input.InitialBalance.IsNegative() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidBalanceAmount,
			"initial balance cannot be negative",
			domainerror.ErrInvalidBalanceAmount,
		)
	}

	var account *entity.BankAccount

	err := uc.ledger.WithinTransaction(ctx, func(ctx context.Context, ops adapter.LedgerOps) error {
		count, err := ops.Accounts().CountByUser(ctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to count accounts: %w", err)
		}

		account = entity.NewBankAccount(
			input.UserID,
			input.AccountNumber,
			input.IFSCCode,
			input.BankName,
			input.AccountHolderName,
			input.InitialBalance,
			count == 0,
		)

		return ops.Accounts().Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Bank account linked",
		"userID", input.UserID,
		"accountID", account.ID,
		"isPrimary", account.IsPrimary,
	)

	return &LinkAccountOutput{Account: account}, nil
}
