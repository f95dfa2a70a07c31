// Package vault contains the allocation engine use cases: creating,
// resizing, listing and retiring vaults. Every mutation runs in one ledger
// unit of work that re-reads account state, so the invariant
// sum(active allocations) <= account balance holds under concurrency.
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

// CreateVaultInput represents the input for creating a vault.
type CreateVaultInput struct {
	UserID          uuid.UUID
	BankAccountID   uuid.UUID
	Name            string
	Type            string
	AllocatedAmount decimal.Decimal
	Icon            string
	BudgetPeriod    entity.BudgetPeriod
	AutoRefill      bool
}

// CreateVaultOutput represents the output of creating a vault.
type CreateVaultOutput struct {
	Vault       *entity.Vault
	Transaction *entity.Transaction
}

// CreateVaultUseCase handles vault creation with the initial allocation.
type CreateVaultUseCase struct {
	ledger adapter.Ledger
}

// NewCreateVaultUseCase creates a new CreateVaultUseCase instance.
func NewCreateVaultUseCase(ledger adapter.Ledger) *CreateVaultUseCase {
	return &CreateVaultUseCase{
		ledger: ledger,
	}
}

// Execute creates the vault. The headroom check and the insert share one unit
// of work so two concurrent creations cannot both claim the same unallocated
// money.
func (uc *CreateVaultUseCase) Execute(ctx context.Context, input CreateVaultInput) (*CreateVaultOutput, error) {
	if !input.AllocatedAmount.IsPositive() {
		return nil, domainerror.NewVaultError(
			domainerror.ErrCodeInvalidAllocationAmount,
			"allocated amount must be greater than zero",
			domainerror.ErrInvalidAllocationAmount,
		)
	}
	if input.Name == "" || input.Type == "" {
		return nil, domainerror.NewVaultError(
			domainerror.ErrCodeMissingVaultFields,
			"name and type are required",
			nil,
		)
	}
	if err := validateBudgetPeriod(input.BudgetPeriod); err != nil {
		return nil, err
	}

	var (
		vault       *entity.Vault
		transaction *entity.Transaction
	)

	err := uc.ledger.WithinTransaction(ctx, func(ctx context.Context, ops adapter.LedgerOps) error {
		account, err := ops.Accounts().FindByID(ctx, input.BankAccountID, input.UserID)
		if err != nil {
			return err
		}

		allocated, err := ops.Vaults().SumAllocatedByAccount(ctx, account.ID, nil)
		if err != nil {
			return fmt.Errorf("failed to sum allocations: %w", err)
		}

		unallocated := account.Balance.Sub(allocated)
		if input.AllocatedAmount.GreaterThan(unallocated) {
			return domainerror.NewVaultError(
				domainerror.ErrCodeInsufficientUnallocatedBalance,
				fmt.Sprintf("requested %s but only %s is unallocated", input.AllocatedAmount, unallocated),
				domainerror.ErrInsufficientUnallocatedBalance,
			)
		}

		vault = entity.NewVault(
			input.UserID,
			account.ID,
			input.Name,
			input.Type,
			input.AllocatedAmount,
			input.Icon,
			input.BudgetPeriod,
			input.AutoRefill,
		)
		if err := ops.Vaults().Create(ctx, vault); err != nil {
			return fmt.Errorf("failed to create vault: %w", err)
		}

		vaultID := vault.ID
		transaction = entity.NewTransaction(
			entity.ReferencePrefixAllocation,
			input.UserID,
			&vaultID,
			account.ID,
			entity.TransactionTypeDebit,
			entity.CategoryVaultAllocation,
			input.AllocatedAmount,
			fmt.Sprintf("Allocated %s to vault %q", input.AllocatedAmount, vault.Name),
			entity.TransactionStatusCompleted,
			"internal",
		)

		return ops.Transactions().Create(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Vault created",
		"userID", input.UserID,
		"vaultID", vault.ID,
		"allocated", vault.AllocatedAmount,
	)

	return &CreateVaultOutput{Vault: vault, Transaction: transaction}, nil
}

func validateBudgetPeriod(period entity.BudgetPeriod) error {
	switch period {
	case "", entity.BudgetPeriodMonthly, entity.BudgetPeriodWeekly, entity.BudgetPeriodOneTime:
		return nil
	default:
		return domainerror.NewVaultError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			fmt.Sprintf("unknown budget period %q", period),
			domainerror.ErrInvalidBudgetPeriod,
		)
	}
}
