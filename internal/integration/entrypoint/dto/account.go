package dto

import (
	"time"

	"github.com/vaultpay/backend/internal/application/usecase/account"
	"github.com/vaultpay/backend/internal/domain/entity"
)

// LinkAccountRequest represents the request body for linking a bank account.
type LinkAccountRequest struct {
	AccountNumber     string `json:"account_number" binding:"required,min=6,max=20"`
	IFSCCode          string `json:"ifsc_code" binding:"required,min=4,max=11"`
	BankName          string `json:"bank_name" binding:"required,min=1,max=100"`
	AccountHolderName string `json:"account_holder_name" binding:"required,min=1,max=100"`
	InitialBalance    string `json:"initial_balance" binding:"required"`
}

// UpdateBalanceRequest represents the request body for a balance adjustment.
type UpdateBalanceRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=credit debit"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

// BankAccountResponse represents a bank account in API responses.
type BankAccountResponse struct {
	ID                string    `json:"id"`
	AccountNumber     string    `json:"account_number"`
	IFSCCode          string    `json:"ifsc_code"`
	BankName          string    `json:"bank_name"`
	AccountHolderName string    `json:"account_holder_name"`
	Balance           string    `json:"balance"`
	IsPrimary         bool      `json:"is_primary"`
	IsVerified        bool      `json:"is_verified"`
	CreatedAt         time.Time `json:"created_at"`
}

// AccountSummaryResponse represents the allocation summary of one account.
type AccountSummaryResponse struct {
	AccountID           string  `json:"account_id"`
	Balance             string  `json:"balance"`
	AllocatedAmount     string  `json:"allocated_amount"`
	UnallocatedAmount   string  `json:"unallocated_amount"`
	AllocatedPercentage float64 `json:"allocated_percentage"`
	ActiveVaultCount    int64   `json:"active_vault_count"`
}

// BalanceAdjustmentResponse represents the outcome of a balance adjustment.
type BalanceAdjustmentResponse struct {
	Account         BankAccountResponse `json:"account"`
	PreviousBalance string              `json:"previous_balance"`
	Transaction     TransactionResponse `json:"transaction"`
}

// ToBankAccountResponse converts a BankAccount entity to its DTO.
func ToBankAccountResponse(a *entity.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:                a.ID.String(),
		AccountNumber:     maskAccountNumber(a.AccountNumber),
		IFSCCode:          a.IFSCCode,
		BankName:          a.BankName,
		AccountHolderName: a.AccountHolderName,
		Balance:           a.Balance.StringFixed(2),
		IsPrimary:         a.IsPrimary,
		IsVerified:        a.IsVerified,
		CreatedAt:         a.CreatedAt,
	}
}

// ToBankAccountResponses converts a slice of BankAccount entities.
func ToBankAccountResponses(accounts []*entity.BankAccount) []BankAccountResponse {
	responses := make([]BankAccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToBankAccountResponse(a)
	}
	return responses
}

// ToAccountSummaryResponse converts a summary output to its DTO.
func ToAccountSummaryResponse(s *account.GetAccountSummaryOutput) AccountSummaryResponse {
	return AccountSummaryResponse{
		AccountID:           s.AccountID.String(),
		Balance:             s.Balance.StringFixed(2),
		AllocatedAmount:     s.AllocatedAmount.StringFixed(2),
		UnallocatedAmount:   s.UnallocatedAmount.StringFixed(2),
		AllocatedPercentage: s.AllocatedPercentage,
		ActiveVaultCount:    s.ActiveVaultCount,
	}
}

// maskAccountNumber hides all but the last four digits.
func maskAccountNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	masked := make([]byte, len(number)-4)
	for i := range masked {
		masked[i] = 'X'
	}
	return string(masked) + number[len(number)-4:]
}
