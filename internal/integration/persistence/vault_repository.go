// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/integration/persistence/model"
)

// vaultRepository implements the adapter.VaultRepository interface.
type vaultRepository struct {
	db *gorm.DB
}

// NewVaultRepository creates a new vault repository instance.
func NewVaultRepository(db *gorm.DB) adapter.VaultRepository {
	return &vaultRepository{
		db: db,
	}
}

// Create creates a new vault in the database.
func (r *vaultRepository) Create(ctx context.Context, vault *entity.Vault) error {
	vaultModel := model.VaultFromEntity(vault)
	result := r.db.WithContext(ctx).Create(vaultModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a vault by ID regardless of state, scoped to the owner.
func (r *vaultRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Vault, error) {
	var vaultModel model.VaultModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&vaultModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrVaultNotFound
		}
		return nil, result.Error
	}
	return vaultModel.ToEntity(), nil
}

// FindActiveByID retrieves an active vault by ID, scoped to the owner.
func (r *vaultRepository) FindActiveByID(ctx context.Context, id, userID uuid.UUID) (*entity.Vault, error) {
	return r.findActive(ctx, r.db, id, userID)
}

// FindActiveByIDForUpdate retrieves an active vault holding a row lock until
// the surrounding transaction ends. On SQLite (tests) the locking clause is
// skipped; its single writer connection serializes units of work anyway.
func (r *vaultRepository) FindActiveByIDForUpdate(ctx context.Context, id, userID uuid.UUID) (*entity.Vault, error) {
	tx := r.db
	if tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.findActive(ctx, tx, id, userID)
}

func (r *vaultRepository) findActive(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*entity.Vault, error) {
	var vaultModel model.VaultModel
	result := tx.WithContext(ctx).
		Where("id = ? AND user_id = ? AND state = ?", id, userID, string(entity.VaultStateActive)).
		First(&vaultModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrVaultNotFound
		}
		return nil, result.Error
	}
	return vaultModel.ToEntity(), nil
}

// FindActiveByUser retrieves all active vaults for a user, newest first.
func (r *vaultRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Vault, error) {
	var vaultModels []model.VaultModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND state = ?", userID, string(entity.VaultStateActive)).
		Order("created_at DESC").
		Find(&vaultModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toVaultEntities(vaultModels), nil
}

// FindActiveByAccount retrieves all active vaults backed by an account.
func (r *vaultRepository) FindActiveByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Vault, error) {
	var vaultModels []model.VaultModel
	result := r.db.WithContext(ctx).
		Where("bank_account_id = ? AND state = ?", accountID, string(entity.VaultStateActive)).
		Order("created_at DESC").
		Find(&vaultModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toVaultEntities(vaultModels), nil
}

// SumAllocatedByAccount sums allocatedAmount over the account's active vaults.
func (r *vaultRepository) SumAllocatedByAccount(ctx context.Context, accountID uuid.UUID, excludeVaultID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&model.VaultModel{}).
		Where("bank_account_id = ? AND state = ?", accountID, string(entity.VaultStateActive))
	if excludeVaultID != nil {
		query = query.Where("id <> ?", *excludeVaultID)
	}

	var total decimal.Decimal
	result := query.
		Select("COALESCE(SUM(allocated_amount), 0)").
		Scan(&total)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return total, nil
}

// CountActiveByAccount counts active vaults backed by an account.
func (r *vaultRepository) CountActiveByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.VaultModel{}).
		Where("bank_account_id = ? AND state = ?", accountID, string(entity.VaultStateActive)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Update persists changes to an existing vault.
func (r *vaultRepository) Update(ctx context.Context, vault *entity.Vault) error {
	vaultModel := model.VaultFromEntity(vault)
	result := r.db.WithContext(ctx).
		Model(&model.VaultModel{}).
		Where("id = ?", vault.ID).
		Updates(map[string]interface{}{
			"name":             vaultModel.Name,
			"allocated_amount": vaultModel.AllocatedAmount,
			"spent_amount":     vaultModel.SpentAmount,
			"icon":             vaultModel.Icon,
			"budget_period":    vaultModel.BudgetPeriod,
			"auto_refill":      vaultModel.AutoRefill,
			"state":            vaultModel.State,
			"updated_at":       vaultModel.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrVaultNotFound
	}
	return nil
}

// Delete hard-deletes a vault.
func (r *vaultRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.VaultModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrVaultNotFound
	}
	return nil
}

func toVaultEntities(vaultModels []model.VaultModel) []*entity.Vault {
	vaults := make([]*entity.Vault, len(vaultModels))
	for i, vm := range vaultModels {
		vaults[i] = vm.ToEntity()
	}
	return vaults
}
