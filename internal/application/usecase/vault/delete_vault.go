package vault

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
)

// DeleteVaultInput represents the input for deleting a vault.
type DeleteVaultInput struct {
	UserID  uuid.UUID
	VaultID uuid.UUID
}

// DeleteVaultOutput reports how the vault was retired.
type DeleteVaultOutput struct {
	// Archived is true when the vault had spending history and was archived
	// instead of removed, keeping its ledger entries queryable.
	Archived bool
}

// DeleteVaultUseCase retires a vault. Either way its allocation stops counting
// against the account's headroom.
type DeleteVaultUseCase struct {
	ledger adapter.Ledger
}

// NewDeleteVaultUseCase creates a new DeleteVaultUseCase instance.
func NewDeleteVaultUseCase(ledger adapter.Ledger) *DeleteVaultUseCase {
	return &DeleteVaultUseCase{
		ledger: ledger,
	}
}

// Execute deletes the vault when it has no spending, archives it otherwise.
func (uc *DeleteVaultUseCase) Execute(ctx context.Context, input DeleteVaultInput) (*DeleteVaultOutput, error) {
	var archived bool

	err := uc.ledger.WithinTransaction(ctx, func(ctx context.Context, ops adapter.LedgerOps) error {
		vault, err := ops.Vaults().FindActiveByID(ctx, input.VaultID, input.UserID)
		if err != nil {
			return err
		}

		if vault.SpentAmount.IsZero() {
			return ops.Vaults().Delete(ctx, vault.ID)
		}

		vault.State = entity.VaultStateArchived
		vault.UpdatedAt = time.Now().UTC()
		archived = true

		return ops.Vaults().Update(ctx, vault)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Vault retired", "userID", input.UserID, "vaultID", input.VaultID, "archived", archived)

	return &DeleteVaultOutput{Archived: archived}, nil
}
