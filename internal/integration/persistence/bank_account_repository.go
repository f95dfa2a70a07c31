// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/integration/persistence/model"
)

// bankAccountRepository implements the adapter.BankAccountRepository interface.
type bankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository creates a new bank account repository instance.
func NewBankAccountRepository(db *gorm.DB) adapter.BankAccountRepository {
	return &bankAccountRepository{
		db: db,
	}
}

// Create creates a new bank account in the database.
func (r *bankAccountRepository) Create(ctx context.Context, account *entity.BankAccount) error {
	accountModel := model.BankAccountFromEntity(account)
	result := r.db.WithContext(ctx).Create(accountModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an account by its ID, scoped to the owning user.
func (r *bankAccountRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.BankAccount, error) {
	var accountModel model.BankAccountModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByUser retrieves all accounts for a user, primary first, newest next.
func (r *bankAccountRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BankAccount, error) {
	var accountModels []model.BankAccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC, created_at DESC").
		Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*entity.BankAccount, len(accountModels))
	for i, am := range accountModels {
		accounts[i] = am.ToEntity()
	}
	return accounts, nil
}

// FindPrimary retrieves the user's primary account.
func (r *bankAccountRepository) FindPrimary(ctx context.Context, userID uuid.UUID) (*entity.BankAccount, error) {
	var accountModel model.BankAccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_primary = ?", userID, true).
		First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPrimaryAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// CountByUser returns how many accounts the user has linked.
func (r *bankAccountRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.BankAccountModel{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// UpdateBalance sets the account balance.
func (r *bankAccountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&model.BankAccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance":    balance,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

// ClearPrimary clears the primary flag on all of the user's accounts.
func (r *bankAccountRepository) ClearPrimary(ctx context.Context, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.BankAccountModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_primary": false,
			"updated_at": time.Now().UTC(),
		})
	return result.Error
}

// SetPrimary marks the given account as primary.
func (r *bankAccountRepository) SetPrimary(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.BankAccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_primary": true,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

// FindAnotherAccount returns any account of the user other than the given one.
func (r *bankAccountRepository) FindAnotherAccount(ctx context.Context, userID, excludeID uuid.UUID) (*entity.BankAccount, error) {
	var accountModel model.BankAccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id <> ?", userID, excludeID).
		Order("created_at ASC").
		First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// Delete removes an account from the database.
func (r *bankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.BankAccountModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}
