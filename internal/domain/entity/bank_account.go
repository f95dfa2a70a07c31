// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccount represents a linked bank account in the VaultPay system.
// The balance is the total money held in the account; the portion not covered
// by active vault allocations is the unallocated balance.
type BankAccount struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	AccountNumber     string
	IFSCCode          string
	BankName          string
	AccountHolderName string
	Balance           decimal.Decimal
	IsPrimary         bool
	IsVerified        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewBankAccount creates a new BankAccount entity. The first account linked by
// a user is marked primary by the caller; verification is stubbed on (no real
// bank integration).
func NewBankAccount(
	userID uuid.UUID,
	accountNumber string,
	ifscCode string,
	bankName string,
	accountHolderName string,
	initialBalance decimal.Decimal,
	isPrimary bool,
) *BankAccount {
	now := time.Now().UTC()

	return &BankAccount{
		ID:                uuid.New(),
		UserID:            userID,
		AccountNumber:     accountNumber,
		IFSCCode:          strings.ToUpper(ifscCode),
		BankName:          bankName,
		AccountHolderName: accountHolderName,
		Balance:           initialBalance,
		IsPrimary:         isPrimary,
		IsVerified:        true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
