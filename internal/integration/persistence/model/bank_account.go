// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/domain/entity"
)

// BankAccountModel represents the bank_accounts table in the database.
type BankAccountModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountNumber     string          `gorm:"type:varchar(34);not null"`
	IFSCCode          string          `gorm:"type:varchar(11);not null"`
	BankName          string          `gorm:"type:varchar(255);not null"`
	AccountHolderName string          `gorm:"type:varchar(255);not null"`
	Balance           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsPrimary         bool            `gorm:"default:false;index"`
	IsVerified        bool            `gorm:"default:false"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the BankAccountModel.
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToEntity converts a BankAccountModel to a domain BankAccount entity.
func (m *BankAccountModel) ToEntity() *entity.BankAccount {
	return &entity.BankAccount{
		ID:                m.ID,
		UserID:            m.UserID,
		AccountNumber:     m.AccountNumber,
		IFSCCode:          m.IFSCCode,
		BankName:          m.BankName,
		AccountHolderName: m.AccountHolderName,
		Balance:           m.Balance,
		IsPrimary:         m.IsPrimary,
		IsVerified:        m.IsVerified,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// BankAccountFromEntity converts a domain BankAccount entity to a BankAccountModel.
func BankAccountFromEntity(a *entity.BankAccount) *BankAccountModel {
	return &BankAccountModel{
		ID:                a.ID,
		UserID:            a.UserID,
		AccountNumber:     a.AccountNumber,
		IFSCCode:          a.IFSCCode,
		BankName:          a.BankName,
		AccountHolderName: a.AccountHolderName,
		Balance:           a.Balance,
		IsPrimary:         a.IsPrimary,
		IsVerified:        a.IsVerified,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
