// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/domain/entity"
)

// BankAccountRepository defines the interface for bank account persistence
// operations. Lookups are always scoped by (id, userID) so one user can never
// reach another's accounts.
type BankAccountRepository interface {
	// Create creates a new bank account in the database.
	Create(ctx context.Context, account *entity.BankAccount) error

	// FindByID retrieves an account by its ID, scoped to the owning user.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.BankAccount, error)

	// FindByUser retrieves all accounts for a user, primary first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BankAccount, error)

	// FindPrimary retrieves the user's primary account.
	FindPrimary(ctx context.Context, userID uuid.UUID) (*entity.BankAccount, error)

	// CountByUser returns how many accounts the user has linked.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// UpdateBalance sets the account balance.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	// ClearPrimary clears the primary flag on all of the user's accounts.
	ClearPrimary(ctx context.Context, userID uuid.UUID) error

	// SetPrimary marks the given account as primary.
	SetPrimary(ctx context.Context, id uuid.UUID) error

	// FindAnotherAccount returns any account of the user other than the given
	// one, or ErrAccountNotFound if none remains.
	FindAnotherAccount(ctx context.Context, userID, excludeID uuid.UUID) (*entity.BankAccount, error)

	// Delete removes an account from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
