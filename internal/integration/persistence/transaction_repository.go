// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create appends a new ledger entry.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrDuplicateReference
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves an entry by ID, scoped to the owning user.
func (r *transactionRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIdempotencyKey retrieves the entry recorded under an idempotency key.
func (r *transactionRepository) FindByIdempotencyKey(ctx context.Context, key string, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("idempotency_key = ? AND user_id = ?", key, userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves entries matching the filter, newest first.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	query = query.Where("user_id = ?", filter.UserID)

	if filter.VaultID != nil {
		query = query.Where("vault_id = ?", *filter.VaultID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	limit := pagination.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := pagination.Offset
	if offset < 0 {
		offset = 0
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Vault").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithVault, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithVault()
	}

	return &entity.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
		HasMore:      int64(offset+limit) < total,
	}, nil
}

// FindRecentByVault retrieves the newest entries for one vault.
func (r *transactionRepository) FindRecentByVault(ctx context.Context, vaultID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}

	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("vault_id = ?", vaultID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FinalizeStatus moves a pending entry to completed or failed. The status
// guard in the WHERE clause makes finalization single-shot: a second call
// matches no rows and reports ErrTransactionNotFound.
func (r *transactionRepository) FinalizeStatus(ctx context.Context, id uuid.UUID, status entity.TransactionStatus, gatewayRef *string, gatewayResponse string) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ? AND status = ?", id, string(entity.TransactionStatusPending)).
		Updates(map[string]interface{}{
			"status":           string(status),
			"gateway_ref":      gatewayRef,
			"gateway_response": gatewayResponse,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// SumCompletedDebits sums completed non-allocation debit amounts for a vault.
func (r *transactionRepository) SumCompletedDebits(ctx context.Context, vaultID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("vault_id = ? AND type = ? AND status = ? AND category <> ?",
			vaultID,
			string(entity.TransactionTypeDebit),
			string(entity.TransactionStatusCompleted),
			entity.CategoryVaultAllocation,
		).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return total, nil
}

// pgCodeUniqueViolation is the Postgres error code for a violated unique
// constraint, the authoritative duplicate-payment signal.
const pgCodeUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation. The
// database connections are opened with TranslateError, so both Postgres and
// the SQLite test store surface gorm.ErrDuplicatedKey; the typed and string
// checks cover errors that bypass the translator.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
