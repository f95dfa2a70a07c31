package dto

import (
	"github.com/vaultpay/backend/internal/application/usecase/analytics"
)

// CategorySpendResponse is one category bucket in spending reports.
type CategorySpendResponse struct {
	VaultType        string  `json:"vault_type"`
	Amount           string  `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int64   `json:"transaction_count"`
}

// SpendingByCategoryResponse represents the category spending report.
type SpendingByCategoryResponse struct {
	Categories []CategorySpendResponse `json:"categories"`
	TotalSpent string                  `json:"total_spent"`
}

// TimeBucketResponse is one time bucket in spending reports.
type TimeBucketResponse struct {
	Date             string `json:"date"`
	Amount           string `json:"amount"`
	TransactionCount int64  `json:"transaction_count"`
}

// SpendingOverTimeResponse represents the time-bucketed spending report.
type SpendingOverTimeResponse struct {
	Granularity string               `json:"granularity"`
	Buckets     []TimeBucketResponse `json:"buckets"`
	TotalSpent  string               `json:"total_spent"`
}

// VaultSpendResponse is one vault bucket in spending reports.
type VaultSpendResponse struct {
	VaultID           string  `json:"vault_id"`
	VaultName         string  `json:"vault_name"`
	VaultIcon         string  `json:"vault_icon"`
	Amount            string  `json:"amount"`
	PercentageOfSpend float64 `json:"percentage_of_spend"`
	UsagePercentage   float64 `json:"usage_percentage"`
	TransactionCount  int64   `json:"transaction_count"`
}

// SpendingByVaultResponse represents the per-vault spending report.
type SpendingByVaultResponse struct {
	Vaults     []VaultSpendResponse `json:"vaults"`
	TotalSpent string               `json:"total_spent"`
}

// VaultAnalyticsResponse represents single-vault analytics.
type VaultAnalyticsResponse struct {
	Vault              VaultResponse         `json:"vault"`
	SpentInRange       string                `json:"spent_in_range"`
	TransactionCount   int64                 `json:"transaction_count"`
	AverageTransaction string                `json:"average_transaction"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// UserSummaryResponse represents the cross-vault user summary.
type UserSummaryResponse struct {
	TotalAllocated     string                         `json:"total_allocated"`
	TotalSpent         string                         `json:"total_spent"`
	TotalRemaining     string                         `json:"total_remaining"`
	UsagePercentage    float64                        `json:"usage_percentage"`
	ActiveVaultCount   int                            `json:"active_vault_count"`
	RecentTransactions []TransactionWithVaultResponse `json:"recent_transactions"`
}

// VaultReconciliationResponse is one vault's drift-check result.
type VaultReconciliationResponse struct {
	VaultID      string `json:"vault_id"`
	VaultName    string `json:"vault_name"`
	CachedSpent  string `json:"cached_spent"`
	LedgerSpent  string `json:"ledger_spent"`
	Drift        string `json:"drift"`
	IsConsistent bool   `json:"is_consistent"`
}

// ReconciliationResponse represents the drift-check report.
type ReconciliationResponse struct {
	Results       []VaultReconciliationResponse `json:"results"`
	DriftDetected bool                          `json:"drift_detected"`
	CheckedVaults int                           `json:"checked_vaults"`
}

// InsightsResponse represents generated spending insights.
type InsightsResponse struct {
	Insights  []string `json:"insights"`
	Generated bool     `json:"generated"`
}

// ToSpendingByCategoryResponse converts the aggregation output to its DTO.
func ToSpendingByCategoryResponse(out *analytics.SpendingByCategoryOutput) SpendingByCategoryResponse {
	categories := make([]CategorySpendResponse, len(out.Categories))
	for i, c := range out.Categories {
		categories[i] = CategorySpendResponse{
			VaultType:        c.VaultType,
			Amount:           c.Amount.StringFixed(2),
			Percentage:       c.Percentage,
			TransactionCount: c.TransactionCount,
		}
	}
	return SpendingByCategoryResponse{
		Categories: categories,
		TotalSpent: out.TotalSpent.StringFixed(2),
	}
}

// ToSpendingOverTimeResponse converts the aggregation output to its DTO.
func ToSpendingOverTimeResponse(out *analytics.SpendingOverTimeOutput, granularity analytics.Granularity) SpendingOverTimeResponse {
	buckets := make([]TimeBucketResponse, len(out.Buckets))
	for i, b := range out.Buckets {
		buckets[i] = TimeBucketResponse{
			Date:             b.Date,
			Amount:           b.Amount.StringFixed(2),
			TransactionCount: b.TransactionCount,
		}
	}
	return SpendingOverTimeResponse{
		Granularity: string(granularity),
		Buckets:     buckets,
		TotalSpent:  out.TotalSpent.StringFixed(2),
	}
}

// ToSpendingByVaultResponse converts the aggregation output to its DTO.
func ToSpendingByVaultResponse(out *analytics.SpendingByVaultOutput) SpendingByVaultResponse {
	vaults := make([]VaultSpendResponse, len(out.Vaults))
	for i, v := range out.Vaults {
		vaults[i] = VaultSpendResponse{
			VaultID:           v.VaultID.String(),
			VaultName:         v.VaultName,
			VaultIcon:         v.VaultIcon,
			Amount:            v.Amount.StringFixed(2),
			PercentageOfSpend: v.PercentageOfSpend,
			UsagePercentage:   v.UsagePercentage,
			TransactionCount:  v.TransactionCount,
		}
	}
	return SpendingByVaultResponse{
		Vaults:     vaults,
		TotalSpent: out.TotalSpent.StringFixed(2),
	}
}

// ToVaultAnalyticsResponse converts the analytics output to its DTO.
func ToVaultAnalyticsResponse(out *analytics.VaultAnalyticsOutput) VaultAnalyticsResponse {
	recent := make([]TransactionResponse, len(out.RecentTransactions))
	for i, t := range out.RecentTransactions {
		recent[i] = ToTransactionResponse(t)
	}
	return VaultAnalyticsResponse{
		Vault:              ToVaultResponse(out.Vault, out.Balance),
		SpentInRange:       out.SpentInRange.StringFixed(2),
		TransactionCount:   out.TransactionCount,
		AverageTransaction: out.AverageTransaction.StringFixed(2),
		RecentTransactions: recent,
	}
}

// ToUserSummaryResponse converts the summary output to its DTO.
func ToUserSummaryResponse(out *analytics.UserSummaryOutput) UserSummaryResponse {
	recent := make([]TransactionWithVaultResponse, len(out.RecentTransactions))
	for i, tw := range out.RecentTransactions {
		recent[i] = TransactionWithVaultResponse{
			TransactionResponse: ToTransactionResponse(tw.Transaction),
			VaultName:           tw.VaultName,
			VaultIcon:           tw.VaultIcon,
		}
	}
	return UserSummaryResponse{
		TotalAllocated:     out.TotalAllocated.StringFixed(2),
		TotalSpent:         out.TotalSpent.StringFixed(2),
		TotalRemaining:     out.TotalRemaining.StringFixed(2),
		UsagePercentage:    out.UsagePercentage,
		ActiveVaultCount:   out.ActiveVaultCount,
		RecentTransactions: recent,
	}
}

// ToReconciliationResponse converts the drift-check output to its DTO.
func ToReconciliationResponse(out *analytics.ReconcileVaultOutput) ReconciliationResponse {
	results := make([]VaultReconciliationResponse, len(out.Results))
	for i, r := range out.Results {
		results[i] = VaultReconciliationResponse{
			VaultID:      r.VaultID.String(),
			VaultName:    r.VaultName,
			CachedSpent:  r.CachedSpent.StringFixed(2),
			LedgerSpent:  r.LedgerSpent.StringFixed(2),
			Drift:        r.Drift.StringFixed(2),
			IsConsistent: r.IsConsistent,
		}
	}
	return ReconciliationResponse{
		Results:       results,
		DriftDetected: out.DriftDetected,
		CheckedVaults: out.CheckedVaults,
	}
}
