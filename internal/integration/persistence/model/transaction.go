// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Rows are append-only; the only update ever issued against this table is the
// single-shot finalization of a pending row's status.
type TransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Reference       string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	IdempotencyKey  *string         `gorm:"type:varchar(64);uniqueIndex"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	VaultID         *uuid.UUID      `gorm:"type:uuid;index"`
	BankAccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            string          `gorm:"type:varchar(10);not null"`
	Category        string          `gorm:"type:varchar(50);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description     string          `gorm:"type:varchar(255)"`
	Status          string          `gorm:"type:varchar(10);not null;index"`
	PaymentMethod   string          `gorm:"type:varchar(20)"`
	GatewayRef      *string         `gorm:"type:varchar(64)"`
	GatewayResponse string          `gorm:"type:text"`
	RecipientPhone  string          `gorm:"type:varchar(20)"`
	RecipientUPI    string          `gorm:"type:varchar(100)"`
	RecipientID     string          `gorm:"type:varchar(64)"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	UpdatedAt       time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Vault       *VaultModel       `gorm:"foreignKey:VaultID;references:ID"`
	BankAccount *BankAccountModel `gorm:"foreignKey:BankAccountID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:              m.ID,
		Reference:       m.Reference,
		IdempotencyKey:  m.IdempotencyKey,
		UserID:          m.UserID,
		VaultID:         m.VaultID,
		BankAccountID:   m.BankAccountID,
		Type:            entity.TransactionType(m.Type),
		Category:        m.Category,
		Amount:          m.Amount,
		Description:     m.Description,
		Status:          entity.TransactionStatus(m.Status),
		PaymentMethod:   m.PaymentMethod,
		GatewayRef:      m.GatewayRef,
		GatewayResponse: m.GatewayResponse,
		RecipientPhone:  m.RecipientPhone,
		RecipientUPI:    m.RecipientUPI,
		RecipientID:     m.RecipientID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToEntityWithVault converts a TransactionModel with its Vault preloaded to a
// TransactionWithVault entity.
func (m *TransactionModel) ToEntityWithVault() *entity.TransactionWithVault {
	result := &entity.TransactionWithVault{
		Transaction: m.ToEntity(),
	}

	if m.Vault != nil {
		result.VaultName = m.Vault.Name
		result.VaultIcon = m.Vault.Icon
	}

	return result
}

// TransactionFromEntity converts a domain Transaction entity to a TransactionModel.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              t.ID,
		Reference:       t.Reference,
		IdempotencyKey:  t.IdempotencyKey,
		UserID:          t.UserID,
		VaultID:         t.VaultID,
		BankAccountID:   t.BankAccountID,
		Type:            string(t.Type),
		Category:        t.Category,
		Amount:          t.Amount,
		Description:     t.Description,
		Status:          string(t.Status),
		PaymentMethod:   t.PaymentMethod,
		GatewayRef:      t.GatewayRef,
		GatewayResponse: t.GatewayResponse,
		RecipientPhone:  t.RecipientPhone,
		RecipientUPI:    t.RecipientUPI,
		RecipientID:     t.RecipientID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
