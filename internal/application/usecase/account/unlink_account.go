package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
)

// UnlinkAccountInput represents the input for unlinking a bank account.
type UnlinkAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// UnlinkAccountUseCase handles bank account removal. An account still backing
// active vaults cannot be removed; removing the primary account promotes
// another account in the same unit of work.
type UnlinkAccountUseCase struct {
	ledger adapter.Ledger
}

// NewUnlinkAccountUseCase creates a new UnlinkAccountUseCase instance.
func NewUnlinkAccountUseCase(ledger adapter.Ledger) *UnlinkAccountUseCase {
	return &UnlinkAccountUseCase{
		ledger: ledger,
	}
}

// Execute unlinks the bank account.
func (uc *UnlinkAccountUseCase) Execute(ctx context.Context, input UnlinkAccountInput) error {
	err := uc.ledger.WithinTransaction(ctx, func(ctx context.Context, ops adapter.LedgerOps) error {
		account, err := ops.Accounts().FindByID(ctx, input.AccountID, input.UserID)
		if err != nil {
			return err
		}

		vaultCount, err := ops.Vaults().CountActiveByAccount(ctx, account.ID)
		if err != nil {
			return fmt.Errorf("failed to count vaults: %w", err)
		}
		if vaultCount > 0 {
			return domainerror.NewAccountError(
				domainerror.ErrCodeAccountHasActiveVaults,
				fmt.Sprintf("account backs %d active vault(s); archive or delete them first", vaultCount),
				domainerror.ErrAccountHasActiveVaults,
			)
		}

		if account.IsPrimary {
			successor, err := ops.Accounts().FindAnotherAccount(ctx, input.UserID, account.ID)
			if err != nil && !errors.Is(err, domainerror.ErrAccountNotFound) {
				return err
			}
			if successor != nil {
				if err := ops.Accounts().SetPrimary(ctx, successor.ID); err != nil {
					return fmt.Errorf("failed to promote successor account: %w", err)
				}
			}
		}

		return ops.Accounts().Delete(ctx, account.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("Bank account unlinked", "userID", input.UserID, "accountID", input.AccountID)

	return nil
}
