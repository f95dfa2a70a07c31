package dto

import (
	"time"

	usecasevault "github.com/vaultpay/backend/internal/application/usecase/vault"
	"github.com/vaultpay/backend/internal/domain/entity"
	"github.com/vaultpay/backend/internal/domain/valueobject"
)

// CreateVaultRequest represents the request body for creating a vault.
type CreateVaultRequest struct {
	BankAccountID   string `json:"bank_account_id" binding:"required,uuid"`
	Name            string `json:"name" binding:"required,min=1,max=100"`
	Type            string `json:"type" binding:"required,min=1,max=50"`
	AllocatedAmount string `json:"allocated_amount" binding:"required"`
	Icon            string `json:"icon" binding:"omitempty,max=50"`
	BudgetPeriod    string `json:"budget_period" binding:"omitempty,oneof=monthly weekly one-time"`
	AutoRefill      bool   `json:"auto_refill"`
}

// UpdateVaultRequest represents the request body for updating a vault.
// Absent fields are left unchanged.
type UpdateVaultRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=100"`
	Type            *string `json:"type" binding:"omitempty,min=1,max=50"`
	Icon            *string `json:"icon" binding:"omitempty,max=50"`
	BudgetPeriod    *string `json:"budget_period" binding:"omitempty,oneof=monthly weekly one-time"`
	AutoRefill      *bool   `json:"auto_refill"`
	AllocatedAmount *string `json:"allocated_amount"`
}

// VaultResponse represents a vault in API responses.
type VaultResponse struct {
	ID              string    `json:"id"`
	BankAccountID   string    `json:"bank_account_id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	AllocatedAmount string    `json:"allocated_amount"`
	SpentAmount     string    `json:"spent_amount"`
	RemainingAmount string    `json:"remaining_amount"`
	UsagePercentage float64   `json:"usage_percentage"`
	Icon            string    `json:"icon"`
	BudgetPeriod    string    `json:"budget_period"`
	AutoRefill      bool      `json:"auto_refill"`
	State           string    `json:"state"`
	CreatedAt       time.Time `json:"created_at"`
}

// VaultDetailResponse is a vault with its recent ledger entries.
type VaultDetailResponse struct {
	Vault              VaultResponse         `json:"vault"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// VaultSummaryResponse aggregates an account's active vaults.
type VaultSummaryResponse struct {
	AccountID           string          `json:"account_id"`
	AccountBalance      string          `json:"account_balance"`
	TotalAllocated      string          `json:"total_allocated"`
	TotalSpent          string          `json:"total_spent"`
	TotalRemaining      string          `json:"total_remaining"`
	UnallocatedAmount   string          `json:"unallocated_amount"`
	AllocatedPercentage float64         `json:"allocated_percentage"`
	Vaults              []VaultResponse `json:"vaults"`
}

// ToVaultResponse converts a Vault entity and its derived balance to a DTO.
func ToVaultResponse(v *entity.Vault, balance valueobject.VaultBalance) VaultResponse {
	return VaultResponse{
		ID:              v.ID.String(),
		BankAccountID:   v.BankAccountID.String(),
		Name:            v.Name,
		Type:            v.Type,
		AllocatedAmount: balance.Allocated.StringFixed(2),
		SpentAmount:     balance.Spent.StringFixed(2),
		RemainingAmount: balance.Remaining.StringFixed(2),
		UsagePercentage: balance.UsagePercentage,
		Icon:            v.Icon,
		BudgetPeriod:    string(v.BudgetPeriod),
		AutoRefill:      v.AutoRefill,
		State:           string(v.State),
		CreatedAt:       v.CreatedAt,
	}
}

// ToVaultResponses converts vault views to DTOs.
func ToVaultResponses(views []usecasevault.VaultView) []VaultResponse {
	responses := make([]VaultResponse, len(views))
	for i, view := range views {
		responses[i] = ToVaultResponse(view.Vault, view.Balance)
	}
	return responses
}

// ToVaultSummaryResponse converts a summary output to its DTO.
func ToVaultSummaryResponse(s *usecasevault.GetVaultSummaryOutput) VaultSummaryResponse {
	return VaultSummaryResponse{
		AccountID:           s.AccountID.String(),
		AccountBalance:      s.AccountBalance.StringFixed(2),
		TotalAllocated:      s.TotalAllocated.StringFixed(2),
		TotalSpent:          s.TotalSpent.StringFixed(2),
		TotalRemaining:      s.TotalRemaining.StringFixed(2),
		UnallocatedAmount:   s.UnallocatedAmount.StringFixed(2),
		AllocatedPercentage: s.AllocatedPercentage,
		Vaults:              ToVaultResponses(s.Vaults),
	}
}
