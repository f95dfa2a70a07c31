package dto

import (
	"time"

	"github.com/vaultpay/backend/internal/application/usecase/payment"
	"github.com/vaultpay/backend/internal/domain/entity"
)

// MakePaymentRequest represents the request body for making a payment.
type MakePaymentRequest struct {
	VaultID        string `json:"vault_id" binding:"required,uuid"`
	Amount         string `json:"amount" binding:"required"`
	IdempotencyKey string `json:"idempotency_key" binding:"required,min=8,max=128"`
	Description    string `json:"description" binding:"omitempty,max=255"`
	RecipientPhone string `json:"recipient_phone" binding:"omitempty,max=20"`
	RecipientUPI   string `json:"recipient_upi" binding:"omitempty,max=100"`
	RecipientID    string `json:"recipient_id" binding:"omitempty,max=100"`
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID             string    `json:"id"`
	Reference      string    `json:"reference"`
	VaultID        string    `json:"vault_id,omitempty"`
	BankAccountID  string    `json:"bank_account_id"`
	Type           string    `json:"type"`
	Category       string    `json:"category"`
	Amount         string    `json:"amount"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	PaymentMethod  string    `json:"payment_method,omitempty"`
	GatewayRef     string    `json:"gateway_ref,omitempty"`
	RecipientPhone string    `json:"recipient_phone,omitempty"`
	RecipientUPI   string    `json:"recipient_upi,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionWithVaultResponse pairs a ledger entry with its vault's display fields.
type TransactionWithVaultResponse struct {
	TransactionResponse
	VaultName string `json:"vault_name,omitempty"`
	VaultIcon string `json:"vault_icon,omitempty"`
}

// BalanceViewResponse is the before/after view of a vault's budget returned
// from a payment.
type BalanceViewResponse struct {
	Remaining       string  `json:"remaining"`
	UsagePercentage float64 `json:"usage_percentage"`
}

// PaymentResponse represents the outcome of a payment attempt.
type PaymentResponse struct {
	Transaction     TransactionResponse `json:"transaction"`
	PreviousBalance BalanceViewResponse `json:"previous_balance"`
	NewBalance      BalanceViewResponse `json:"new_balance"`
	Replayed        bool                `json:"replayed,omitempty"`
}

// TransactionListResponse represents one page of ledger entries.
type TransactionListResponse struct {
	Transactions []TransactionWithVaultResponse `json:"transactions"`
	Total        int64                          `json:"total"`
	Limit        int                            `json:"limit"`
	Offset       int                            `json:"offset"`
	HasMore      bool                           `json:"has_more"`
}

// ToTransactionResponse converts a Transaction entity to its DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:             t.ID.String(),
		Reference:      t.Reference,
		BankAccountID:  t.BankAccountID.String(),
		Type:           string(t.Type),
		Category:       t.Category,
		Amount:         t.Amount.StringFixed(2),
		Description:    t.Description,
		Status:         string(t.Status),
		PaymentMethod:  t.PaymentMethod,
		RecipientPhone: t.RecipientPhone,
		RecipientUPI:   t.RecipientUPI,
		CreatedAt:      t.CreatedAt,
	}
	if t.VaultID != nil {
		response.VaultID = t.VaultID.String()
	}
	if t.GatewayRef != nil {
		response.GatewayRef = *t.GatewayRef
	}
	return response
}

// ToPaymentResponse converts a payment output to its DTO.
func ToPaymentResponse(out *payment.MakePaymentOutput) PaymentResponse {
	return PaymentResponse{
		Transaction: ToTransactionResponse(out.Transaction),
		PreviousBalance: BalanceViewResponse{
			Remaining:       out.PreviousBalance.Remaining.StringFixed(2),
			UsagePercentage: out.PreviousBalance.UsagePercentage,
		},
		NewBalance: BalanceViewResponse{
			Remaining:       out.NewBalance.Remaining.StringFixed(2),
			UsagePercentage: out.NewBalance.UsagePercentage,
		},
		Replayed: out.Replayed,
	}
}

// ToTransactionListResponse converts a list result to its DTO.
func ToTransactionListResponse(result *entity.TransactionListResult) TransactionListResponse {
	transactions := make([]TransactionWithVaultResponse, len(result.Transactions))
	for i, tw := range result.Transactions {
		transactions[i] = TransactionWithVaultResponse{
			TransactionResponse: ToTransactionResponse(tw.Transaction),
			VaultName:           tw.VaultName,
			VaultIcon:           tw.VaultIcon,
		}
	}
	return TransactionListResponse{
		Transactions: transactions,
		Total:        result.Total,
		Limit:        result.Limit,
		Offset:       result.Offset,
		HasMore:      result.HasMore,
	}
}
