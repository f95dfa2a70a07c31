// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing ledger entries.
type TransactionFilter struct {
	UserID    uuid.UUID
	VaultID   *uuid.UUID
	Status    *entity.TransactionStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionPagination defines limit/offset pagination options.
type TransactionPagination struct {
	Limit  int
	Offset int
}

// TransactionRepository defines the interface for the append-only ledger.
// Entries are created once; the only permitted mutation is finalizing a
// pending entry's status exactly once.
type TransactionRepository interface {
	// Create appends a new ledger entry. A duplicate reference or idempotency
	// key yields ErrDuplicateReference.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves an entry by ID, scoped to the owning user.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error)

	// FindByIdempotencyKey retrieves the entry recorded under an idempotency
	// key, or ErrTransactionNotFound.
	FindByIdempotencyKey(ctx context.Context, key string, userID uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves entries matching the filter, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// FindRecentByVault retrieves the newest entries for one vault.
	FindRecentByVault(ctx context.Context, vaultID uuid.UUID, limit int) ([]*entity.Transaction, error)

	// FinalizeStatus moves a pending entry to completed or failed, recording
	// the gateway outcome. It is a no-op returning ErrTransactionNotFound if
	// the entry is not pending, which makes finalization single-shot.
	FinalizeStatus(ctx context.Context, id uuid.UUID, status entity.TransactionStatus, gatewayRef *string, gatewayResponse string) error

	// SumCompletedDebits sums completed non-allocation debit amounts for a
	// vault. This is the conservation ground truth the reconciliation engine
	// checks vault.SpentAmount against.
	SumCompletedDebits(ctx context.Context, vaultID uuid.UUID) (decimal.Decimal, error)
}
