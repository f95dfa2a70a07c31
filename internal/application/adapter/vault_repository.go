// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/domain/entity"
)

// VaultRepository defines the interface for vault persistence operations.
// Lookups are scoped by (id, userID); active-only variants exclude archived
// vaults.
type VaultRepository interface {
	// Create creates a new vault in the database.
	Create(ctx context.Context, vault *entity.Vault) error

	// FindByID retrieves a vault by ID regardless of state, scoped to the owner.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Vault, error)

	// FindActiveByID retrieves an active vault by ID, scoped to the owner.
	FindActiveByID(ctx context.Context, id, userID uuid.UUID) (*entity.Vault, error)

	// FindActiveByIDForUpdate retrieves an active vault with a row lock so a
	// concurrent unit of work touching the same vault serializes behind it.
	// The spend-ceiling re-validation inside the payment unit depends on this.
	FindActiveByIDForUpdate(ctx context.Context, id, userID uuid.UUID) (*entity.Vault, error)

	// FindActiveByUser retrieves all active vaults for a user, newest first.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Vault, error)

	// FindActiveByAccount retrieves all active vaults backed by an account.
	FindActiveByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Vault, error)

	// SumAllocatedByAccount sums allocatedAmount over the account's active
	// vaults, optionally excluding one vault (used when resizing it).
	SumAllocatedByAccount(ctx context.Context, accountID uuid.UUID, excludeVaultID *uuid.UUID) (decimal.Decimal, error)

	// CountActiveByAccount counts active vaults backed by an account.
	CountActiveByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)

	// Update persists changes to an existing vault.
	Update(ctx context.Context, vault *entity.Vault) error

	// Delete hard-deletes a vault. Only legal for vaults with zero spending;
	// vaults with history are archived via Update instead.
	Delete(ctx context.Context, id uuid.UUID) error
}
