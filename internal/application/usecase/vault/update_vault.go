package vault

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

// UpdateVaultInput represents the input for updating a vault. Nil fields are
// left unchanged; AllocatedAmount, when set, resizes the budget.
type UpdateVaultInput struct {
	UserID          uuid.UUID
	VaultID         uuid.UUID
	Name            *string
	Type            *string
	Icon            *string
	BudgetPeriod    *entity.BudgetPeriod
	AutoRefill      *bool
	AllocatedAmount *decimal.Decimal
}

// UpdateVaultOutput represents the output of updating a vault.
type UpdateVaultOutput struct {
	Vault *entity.Vault
}

// UpdateVaultUseCase handles vault edits, including budget resizing. Shrinking
// never goes below what is already spent, and growing never exceeds the
// account's unallocated headroom.
type UpdateVaultUseCase struct {
	ledger adapter.Ledger
}

// NewUpdateVaultUseCase creates a new UpdateVaultUseCase instance.
func NewUpdateVaultUseCase(ledger adapter.Ledger) *UpdateVaultUseCase {
	return &UpdateVaultUseCase{
		ledger: ledger,
	}
}

// Execute applies the edits. A resize appends an audit ledger entry carrying
// the delta, so allocation history stays reconstructible from transactions.
func (uc *UpdateVaultUseCase) Execute(ctx context.Context, input UpdateVaultInput) (*UpdateVaultOutput, error) {
	if input.AllocatedAmount != nil && !input.AllocatedAmount.IsPositive() {
		return nil, domainerror.NewVaultError(
			domainerror.ErrCodeInvalidAllocationAmount,
			"allocated amount must be greater than zero",
			domainerror.ErrInvalidAllocationAmount,
		)
	}
	if input.BudgetPeriod != nil {
		if err := validateBudgetPeriod(*input.BudgetPeriod); err != nil {
			return nil, err
		}
	}

	var vault *entity.Vault

	err := uc.ledger.WithinTransaction(ctx, func(ctx context.Context, ops adapter.LedgerOps) error {
		found, err := ops.Vaults().FindActiveByID(ctx, input.VaultID, input.UserID)
		if err != nil {
			return err
		}
		vault = found

		if input.Name != nil {
			vault.Name = *input.Name
		}
		if input.Type != nil {
			vault.Type = *input.Type
		}
		if input.Icon != nil {
			vault.Icon = *input.Icon
		}
		if input.BudgetPeriod != nil {
			vault.BudgetPeriod = *input.BudgetPeriod
		}
		if input.AutoRefill != nil {
			vault.AutoRefill = *input.AutoRefill
		}

		var resizeDelta decimal.Decimal
		if input.AllocatedAmount != nil && !input.AllocatedAmount.Equal(vault.AllocatedAmount) {
			newAmount := *input.AllocatedAmount

			if newAmount.LessThan(vault.SpentAmount) {
				return domainerror.NewVaultError(
					domainerror.ErrCodeBelowSpentAmount,
					fmt.Sprintf("cannot shrink allocation to %s; %s already spent", newAmount, vault.SpentAmount),
					domainerror.ErrBelowSpentAmount,
				)
			}

			account, err := ops.Accounts().FindByID(ctx, vault.BankAccountID, input.UserID)
			if err != nil {
				return err
			}

			// Headroom excludes this vault's own current allocation.
			otherAllocated, err := ops.Vaults().SumAllocatedByAccount(ctx, account.ID, &vault.ID)
			if err != nil {
				return fmt.Errorf("failed to sum allocations: %w", err)
			}

			headroom := account.Balance.Sub(otherAllocated)
			if newAmount.GreaterThan(headroom) {
				return domainerror.NewVaultError(
					domainerror.ErrCodeInsufficientUnallocatedBalance,
					fmt.Sprintf("requested %s but only %s is available on the account", newAmount, headroom),
					domainerror.ErrInsufficientUnallocatedBalance,
				)
			}

			resizeDelta = newAmount.Sub(vault.AllocatedAmount)
			vault.AllocatedAmount = newAmount
		}

		if err := ops.Vaults().Update(ctx, vault); err != nil {
			return fmt.Errorf("failed to update vault: %w", err)
		}

		if !resizeDelta.IsZero() {
			// A raise pulls more money out of the unallocated pool (debit);
			// a shrink releases money back (credit).
			txType := entity.TransactionTypeDebit
			if resizeDelta.IsNegative() {
				txType = entity.TransactionTypeCredit
			}

			vaultID := vault.ID
			audit := entity.NewTransaction(
				entity.ReferencePrefixAllocation,
				input.UserID,
				&vaultID,
				vault.BankAccountID,
				txType,
				entity.CategoryVaultAllocation,
				resizeDelta.Abs(),
				fmt.Sprintf("Reallocated vault %q to %s", vault.Name, vault.AllocatedAmount),
				entity.TransactionStatusCompleted,
				"internal",
			)
			if err := ops.Transactions().Create(ctx, audit); err != nil {
				return fmt.Errorf("failed to record reallocation: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Vault updated", "userID", input.UserID, "vaultID", vault.ID)

	return &UpdateVaultOutput{Vault: vault}, nil
}
