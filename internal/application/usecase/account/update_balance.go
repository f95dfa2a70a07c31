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

// UpdateBalanceInput represents the input for adjusting an account balance.
// Amount is a positive magnitude; Type says whether it is a deposit (credit)
// or a withdrawal (debit).
type UpdateBalanceInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Description string
}

// UpdateBalanceOutput represents the output of a balance adjustment.
type UpdateBalanceOutput struct {
	Account         *entity.BankAccount
	PreviousBalance decimal.Decimal
	Transaction     *entity.Transaction
}

// UpdateBalanceUseCase handles manual balance adjustments. A withdrawal may
// never drop the balance below the amount allocated to the account's active
// vaults; every allocation stays covered by real money.
type UpdateBalanceUseCase struct {
	ledger adapter.Ledger
}

// NewUpdateBalanceUseCase creates a new UpdateBalanceUseCase instance.
func NewUpdateBalanceUseCase(ledger adapter.Ledger) *UpdateBalanceUseCase {
	return &UpdateBalanceUseCase{
		ledger: ledger,
	}
}

// Execute adjusts the account balance and appends an account-level ledger
// entry recording the adjustment.
func (uc *UpdateBalanceUseCase) Execute(ctx context.Context, input UpdateBalanceInput) (*UpdateBalanceOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidBalanceAmount,
			"adjustment amount must be greater than zero",
			domainerror.ErrInvalidBalanceAmount,
		)
	}
	if input.Type != entity.TransactionTypeCredit && input.Type != entity.TransactionTypeDebit {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidBalanceAmount,
			fmt.Sprintf("unknown adjustment type %q", input.Type),
			domainerror.ErrInvalidBalanceAmount,
		)
	}

	var (
		account         *entity.BankAccount
		previousBalance decimal.Decimal
		transaction     *entity.Transaction
	)

	err := uc.ledger.WithinTransaction(ctx, func(ctx context.Context, ops adapter.LedgerOps) error {
		found, err := ops.Accounts().FindByID(ctx, input.AccountID, input.UserID)
		if err != nil {
			return err
		}
		account = found
		previousBalance = account.Balance

		newBalance := account.Balance.Add(input.Amount)
		if input.Type == entity.TransactionTypeDebit {
			newBalance = account.Balance.Sub(input.Amount)

			if newBalance.IsNegative() {
				return domainerror.NewAccountError(
					domainerror.ErrCodeInsufficientAccountBalance,
					fmt.Sprintf("withdrawal of %s exceeds balance %s", input.Amount, account.Balance),
					domainerror.ErrInsufficientAccountBalance,
				)
			}

			allocated, err := ops.Vaults().SumAllocatedByAccount(ctx, account.ID, nil)
			if err != nil {
				return fmt.Errorf("failed to sum allocations: %w", err)
			}
			if newBalance.LessThan(allocated) {
				return domainerror.NewAccountError(
					domainerror.ErrCodeInsufficientAccountBalance,
					fmt.Sprintf("withdrawal would leave %s, below the %s allocated to active vaults", newBalance, allocated),
					domainerror.ErrInsufficientAccountBalance,
				)
			}
		}

		if err := ops.Accounts().UpdateBalance(ctx, account.ID, newBalance); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		account.Balance = newBalance

		description := input.Description
		if description == "" {
			description = "Manual balance adjustment"
		}

		transaction = entity.NewTransaction(
			entity.ReferencePrefixBalance,
			input.UserID,
			nil,
			account.ID,
			input.Type,
			entity.CategoryBalanceAdjustment,
			input.Amount,
			description,
			entity.TransactionStatusCompleted,
			"manual",
		)

		return ops.Transactions().Create(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Account balance adjusted",
		"userID", input.UserID,
		"accountID", account.ID,
		"type", input.Type,
		"amount", input.Amount,
	)

	return &UpdateBalanceOutput{
		Account:         account,
		PreviousBalance: previousBalance,
		Transaction:     transaction,
	}, nil
}
