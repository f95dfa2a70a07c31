package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
)

// Granularity selects the time-bucket width for spend-over-time reports.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// SpendingOverTimeInput represents the input for time-bucketed aggregation.
type SpendingOverTimeInput struct {
	UserID      uuid.UUID
	Range       adapter.AnalyticsRange
	Granularity Granularity
}

// TimeBucket is spend within one day, week, or month.
type TimeBucket struct {
	// Date keys the bucket: the day itself, the Monday of the week, or the
	// first of the month, formatted 2006-01-02.
	Date             string
	Amount           decimal.Decimal
	TransactionCount int64
}

// SpendingOverTimeOutput represents the output of time-bucketed aggregation.
type SpendingOverTimeOutput struct {
	Buckets    []TimeBucket
	TotalSpent decimal.Decimal
}

// SpendingOverTimeUseCase buckets completed spend chronologically. Bucketing
// happens here rather than in SQL so day, week, and month share one date key
// scheme across storage engines.
type SpendingOverTimeUseCase struct {
	analyticsRepository adapter.AnalyticsRepository
}

// NewSpendingOverTimeUseCase creates a new SpendingOverTimeUseCase instance.
func NewSpendingOverTimeUseCase(analyticsRepository adapter.AnalyticsRepository) *SpendingOverTimeUseCase {
	return &SpendingOverTimeUseCase{
		analyticsRepository: analyticsRepository,
	}
}

// Execute buckets spend by the requested granularity, sorted chronologically.
func (uc *SpendingOverTimeUseCase) Execute(ctx context.Context, input SpendingOverTimeInput) (*SpendingOverTimeOutput, error) {
	granularity := input.Granularity
	if granularity == "" {
		granularity = GranularityDay
	}

	switch granularity {
	case GranularityDay, GranularityWeek, GranularityMonth:
	default:
		return nil, fmt.Errorf("%w: unknown granularity %q", domainerror.ErrInvalidDateRange, granularity)
	}

	transactions, err := uc.analyticsRepository.CompletedDebits(ctx, input.UserID, input.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to load spend entries: %w", err)
	}

	byKey := make(map[string]*TimeBucket)
	total := decimal.Zero
	for _, t := range transactions {
		key := bucketKey(t.CreatedAt, granularity)
		bucket, ok := byKey[key]
		if !ok {
			bucket = &TimeBucket{Date: key, Amount: decimal.Zero}
			byKey[key] = bucket
		}
		bucket.Amount = bucket.Amount.Add(t.Amount)
		bucket.TransactionCount++
		total = total.Add(t.Amount)
	}

	buckets := make([]TimeBucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })

	return &SpendingOverTimeOutput{Buckets: buckets, TotalSpent: total}, nil
}

// bucketKey collapses a timestamp to its bucket's first day.
func bucketKey(at time.Time, granularity Granularity) string {
	at = at.UTC()
	switch granularity {
	case GranularityWeek:
		offset := (int(at.Weekday()) + 6) % 7 // days since Monday
		at = at.AddDate(0, 0, -offset)
	case GranularityMonth:
		at = time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return at.Format("2006-01-02")
}
