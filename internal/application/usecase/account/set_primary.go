package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
)

// SetPrimaryInput represents the input for changing the primary account.
type SetPrimaryInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// SetPrimaryOutput represents the output of changing the primary account.
type SetPrimaryOutput struct {
	Account *entity.BankAccount
}

// SetPrimaryUseCase handles primary account designation. Clearing the old flag
// and setting the new one happen in one unit of work, so no reader can observe
// zero primaries (with accounts remaining) or two primaries.
type SetPrimaryUseCase struct {
	ledger adapter.Ledger
}

// NewSetPrimaryUseCase creates a new SetPrimaryUseCase instance.
func NewSetPrimaryUseCase(ledger adapter.Ledger) *SetPrimaryUseCase {
	return &SetPrimaryUseCase{
		ledger: ledger,
	}
}

// Execute makes the given account the user's primary account.
func (uc *SetPrimaryUseCase) Execute(ctx context.Context, input SetPrimaryInput) (*SetPrimaryOutput, error) {
	var account *entity.BankAccount

	err := uc.ledger.WithinTransaction(ctx, func(ctx context.Context, ops adapter.LedgerOps) error {
		found, err := ops.Accounts().FindByID(ctx, input.AccountID, input.UserID)
		if err != nil {
			return err
		}
		account = found

		if account.IsPrimary {
			return nil
		}

		if err := ops.Accounts().ClearPrimary(ctx, input.UserID); err != nil {
			return fmt.Errorf("failed to clear primary flag: %w", err)
		}
		if err := ops.Accounts().SetPrimary(ctx, account.ID); err != nil {
			return fmt.Errorf("failed to set primary flag: %w", err)
		}
		account.IsPrimary = true

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Primary account changed", "userID", input.UserID, "accountID", account.ID)

	return &SetPrimaryOutput{Account: account}, nil
}
