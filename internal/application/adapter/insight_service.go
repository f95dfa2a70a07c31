// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// CategorySpend is one category line in the spending summary fed to the
// insight generator.
type CategorySpend struct {
	Category   string
	Amount     float64
	Percentage float64
}

// VaultSpend is one vault line in the spending summary fed to the insight
// generator.
type VaultSpend struct {
	VaultName         string
	Amount            float64
	PercentageOfTotal float64
}

// InsightSummary is the aggregated, display-rounded input for insight
// generation. It is derived from reconciliation outputs; the core never
// depends on anything the insight service produces.
type InsightSummary struct {
	TimePeriod         string
	TotalSpent         float64
	SpendingByCategory []CategorySpend
	SpendingByVault    []VaultSpend
}

// InsightService turns a spending summary into a short list of human-readable
// insight strings.
type InsightService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// GenerateInsights produces 3-5 concise insight strings from the summary.
	GenerateInsights(ctx context.Context, summary *InsightSummary) ([]string, error)
}
