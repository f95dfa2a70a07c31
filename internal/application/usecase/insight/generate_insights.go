// Package insight contains the advisory spending-insight use case. It sits
// strictly on the read side: its output feeds no money-movement decision.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/application/usecase/analytics"
)

// GenerateInsightsInput represents the input for insight generation.
type GenerateInsightsInput struct {
	UserID uuid.UUID
	Range  adapter.AnalyticsRange
}

// GenerateInsightsOutput represents the output of insight generation.
type GenerateInsightsOutput struct {
	Insights  []string
	Generated bool // false when the fallback advice was used
}

// GenerateInsightsUseCase summarizes the user's spending and asks the insight
// service for advice. Any failure degrades to generic advice; insights are
// never load-bearing.
type GenerateInsightsUseCase struct {
	byCategory     *analytics.SpendingByCategoryUseCase
	byVault        *analytics.SpendingByVaultUseCase
	insightService adapter.InsightService
}

// NewGenerateInsightsUseCase creates a new GenerateInsightsUseCase instance.
func NewGenerateInsightsUseCase(
	byCategory *analytics.SpendingByCategoryUseCase,
	byVault *analytics.SpendingByVaultUseCase,
	insightService adapter.InsightService,
) *GenerateInsightsUseCase {
	return &GenerateInsightsUseCase{
		byCategory:     byCategory,
		byVault:        byVault,
		insightService: insightService,
	}
}

var fallbackInsights = []string{
	"Track your spending regularly to stay within your vault budgets.",
	"Consider setting aside a portion of unallocated balance for savings.",
	"Review vaults that are close to their limit and adjust allocations if needed.",
}

// Execute generates spending insights for the period.
func (uc *GenerateInsightsUseCase) Execute(ctx context.Context, input GenerateInsightsInput) (*GenerateInsightsOutput, error) {
	if !uc.insightService.IsAvailable() {
		return &GenerateInsightsOutput{Insights: fallbackInsights}, nil
	}

	byCategory, err := uc.byCategory.Execute(ctx, analytics.SpendingByCategoryInput{UserID: input.UserID, Range: input.Range})
	if err != nil {
		return nil, fmt.Errorf("failed to summarize categories: %w", err)
	}
	byVault, err := uc.byVault.Execute(ctx, analytics.SpendingByVaultInput{UserID: input.UserID, Range: input.Range})
	if err != nil {
		return nil, fmt.Errorf("failed to summarize vaults: %w", err)
	}

	if byCategory.TotalSpent.IsZero() {
		return &GenerateInsightsOutput{Insights: fallbackInsights}, nil
	}

	summary := &adapter.InsightSummary{
		TimePeriod: describeRange(input.Range),
	}
	summary.TotalSpent, _ = byCategory.TotalSpent.Round(2).Float64()
	for _, c := range byCategory.Categories {
		amount, _ := c.Amount.Round(2).Float64()
		summary.SpendingByCategory = append(summary.SpendingByCategory, adapter.CategorySpend{
			Category:   c.VaultType,
			Amount:     amount,
			Percentage: c.Percentage,
		})
	}
	for _, v := range byVault.Vaults {
		amount, _ := v.Amount.Round(2).Float64()
		summary.SpendingByVault = append(summary.SpendingByVault, adapter.VaultSpend{
			VaultName:         v.VaultName,
			Amount:            amount,
			PercentageOfTotal: v.PercentageOfSpend,
		})
	}

	insights, err := uc.insightService.GenerateInsights(ctx, summary)
	if err != nil {
		slog.Warn("Insight generation failed, serving fallback", "error", err)
		return &GenerateInsightsOutput{Insights: fallbackInsights}, nil
	}

	return &GenerateInsightsOutput{Insights: insights, Generated: true}, nil
}

func describeRange(r adapter.AnalyticsRange) string {
	const layout = "2006-01-02"
	switch {
	case r.Start != nil && r.End != nil:
		return fmt.Sprintf("%s to %s", r.Start.Format(layout), r.End.Format(layout))
	case r.Start != nil:
		return fmt.Sprintf("since %s", r.Start.Format(layout))
	case r.End != nil:
		return fmt.Sprintf("until %s", r.End.Format(layout))
	default:
		return fmt.Sprintf("all time as of %s", time.Now().UTC().Format(layout))
	}
}
