package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	"github.com/vaultpay/backend/internal/integration/persistence/model"
)

// analyticsRepository implements the adapter.AnalyticsRepository interface
// with aggregation queries over the ledger joined to vaults.
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository instance.
func NewAnalyticsRepository(db *gorm.DB) adapter.AnalyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

// spendQuery scopes a query to the entries analytics cares about: completed
// debits excluding allocation audit records.
func (r *analyticsRepository) spendQuery(ctx context.Context, userID uuid.UUID, rng adapter.AnalyticsRange) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.status = ? AND transactions.category <> ?",
			userID,
			string(entity.TransactionTypeDebit),
			string(entity.TransactionStatusCompleted),
			entity.CategoryVaultAllocation,
		)
	if rng.Start != nil {
		query = query.Where("transactions.created_at >= ?", *rng.Start)
	}
	if rng.End != nil {
		query = query.Where("transactions.created_at <= ?", *rng.End)
	}
	return query
}

// SpendingByCategory groups spend by the owning vault's type, largest first.
func (r *analyticsRepository) SpendingByCategory(ctx context.Context, userID uuid.UUID, rng adapter.AnalyticsRange) ([]adapter.CategorySpendRow, error) {
	var rows []adapter.CategorySpendRow
	result := r.spendQuery(ctx, userID, rng).
		Joins("JOIN vaults ON vaults.id = transactions.vault_id").
		Select("vaults.type AS vault_type, COALESCE(SUM(transactions.amount), 0) AS amount, COUNT(*) AS transaction_count").
		Group("vaults.type").
		Order("amount DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

// SpendingByVault groups spend per vault, largest first.
func (r *analyticsRepository) SpendingByVault(ctx context.Context, userID uuid.UUID, rng adapter.AnalyticsRange) ([]adapter.VaultSpendRow, error) {
	var rows []adapter.VaultSpendRow
	result := r.spendQuery(ctx, userID, rng).
		Joins("JOIN vaults ON vaults.id = transactions.vault_id").
		Select("vaults.id AS vault_id, vaults.name AS vault_name, vaults.icon AS vault_icon, vaults.allocated_amount AS allocated_amount, COALESCE(SUM(transactions.amount), 0) AS amount, COUNT(*) AS transaction_count").
		Group("vaults.id, vaults.name, vaults.icon, vaults.allocated_amount").
		Order("amount DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

// CompletedDebits returns raw spend entries in range, oldest first.
func (r *analyticsRepository) CompletedDebits(ctx context.Context, userID uuid.UUID, rng adapter.AnalyticsRange) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.spendQuery(ctx, userID, rng).
		Order("transactions.created_at ASC").
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

// VaultTotals aggregates spend for one vault in range.
func (r *analyticsRepository) VaultTotals(ctx context.Context, vaultID uuid.UUID, rng adapter.AnalyticsRange) (*adapter.VaultTotalsRow, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("transactions.vault_id = ? AND transactions.type = ? AND transactions.status = ? AND transactions.category <> ?",
			vaultID,
			string(entity.TransactionTypeDebit),
			string(entity.TransactionStatusCompleted),
			entity.CategoryVaultAllocation,
		)
	if rng.Start != nil {
		query = query.Where("transactions.created_at >= ?", *rng.Start)
	}
	if rng.End != nil {
		query = query.Where("transactions.created_at <= ?", *rng.End)
	}

	var row adapter.VaultTotalsRow
	result := query.
		Select("COALESCE(SUM(transactions.amount), 0) AS amount, COUNT(*) AS transaction_count").
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	return &row, nil
}
