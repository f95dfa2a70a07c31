// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the budgeting cycle of a vault.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodOneTime BudgetPeriod = "one-time"
)

// VaultState represents the lifecycle state of a vault.
// Active vaults accept payments and count against account headroom.
// Archived is terminal: a vault with spending history is never hard-deleted
// so its transactions stay queryable.
type VaultState string

const (
	VaultStateActive   VaultState = "active"
	VaultStateArchived VaultState = "archived"
)

// DefaultVaultIcon is used when the caller does not pick an icon.
const DefaultVaultIcon = "piggy-bank"

// Vault represents a named sub-budget carved out of one bank account.
// AllocatedAmount is the budget ceiling, SpentAmount the cumulative completed
// debits. Both are mutated only inside a ledger unit of work; remaining and
// usage are always derived, never stored.
type Vault struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	BankAccountID   uuid.UUID
	Name            string
	Type            string
	AllocatedAmount decimal.Decimal
	SpentAmount     decimal.Decimal
	Icon            string
	BudgetPeriod    BudgetPeriod
	AutoRefill      bool // reserved, not consulted by the money-movement core
	State           VaultState
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewVault creates a new active Vault entity with zero spending.
func NewVault(
	userID uuid.UUID,
	bankAccountID uuid.UUID,
	name string,
	vaultType string,
	allocatedAmount decimal.Decimal,
	icon string,
	budgetPeriod BudgetPeriod,
	autoRefill bool,
) *Vault {
	now := time.Now().UTC()

	if icon == "" {
		icon = DefaultVaultIcon
	}
	if budgetPeriod == "" {
		budgetPeriod = BudgetPeriodMonthly
	}

	return &Vault{
		ID:              uuid.New(),
		UserID:          userID,
		BankAccountID:   bankAccountID,
		Name:            name,
		Type:            vaultType,
		AllocatedAmount: allocatedAmount,
		SpentAmount:     decimal.Zero,
		Icon:            icon,
		BudgetPeriod:    budgetPeriod,
		AutoRefill:      autoRefill,
		State:           VaultStateActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsActive reports whether the vault accepts payments and counts against
// its account's headroom.
func (v *Vault) IsActive() bool {
	return v.State == VaultStateActive
}
