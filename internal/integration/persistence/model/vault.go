// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/domain/entity"
)

// VaultModel represents the vaults table in the database.
type VaultModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	BankAccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(100);not null"`
	Type            string          `gorm:"type:varchar(50);not null;index"`
	AllocatedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SpentAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Icon            string          `gorm:"type:varchar(50)"`
	BudgetPeriod    string          `gorm:"type:varchar(10);not null"`
	AutoRefill      bool            `gorm:"default:false"`
	State           string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`

	BankAccount *BankAccountModel `gorm:"foreignKey:BankAccountID;references:ID"`
}

// TableName returns the table name for the VaultModel.
func (VaultModel) TableName() string {
	return "vaults"
}

// ToEntity converts a VaultModel to a domain Vault entity.
func (m *VaultModel) ToEntity() *entity.Vault {
	return &entity.Vault{
		ID:              m.ID,
		UserID:          m.UserID,
		BankAccountID:   m.BankAccountID,
		Name:            m.Name,
		Type:            m.Type,
		AllocatedAmount: m.AllocatedAmount,
		SpentAmount:     m.SpentAmount,
		Icon:            m.Icon,
		BudgetPeriod:    entity.BudgetPeriod(m.BudgetPeriod),
		AutoRefill:      m.AutoRefill,
		State:           entity.VaultState(m.State),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// VaultFromEntity converts a domain Vault entity to a VaultModel.
func VaultFromEntity(v *entity.Vault) *VaultModel {
	return &VaultModel{
		ID:              v.ID,
		UserID:          v.UserID,
		BankAccountID:   v.BankAccountID,
		Name:            v.Name,
		Type:            v.Type,
		AllocatedAmount: v.AllocatedAmount,
		SpentAmount:     v.SpentAmount,
		Icon:            v.Icon,
		BudgetPeriod:    string(v.BudgetPeriod),
		AutoRefill:      v.AutoRefill,
		State:           string(v.State),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}
