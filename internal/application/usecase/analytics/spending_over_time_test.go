package analytics

import (
	"testing"
	"time"
)

func TestBucketKey(t *testing.T) {
	// Wednesday, 2026-03-18 14:30 UTC.
	at := time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name        string
		granularity Granularity
		want        string
	}{
		{"day keeps the date", GranularityDay, "2026-03-18"},
		{"week snaps to Monday", GranularityWeek, "2026-03-16"},
		{"month snaps to the first", GranularityMonth, "2026-03-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := bucketKey(at, tc.granularity); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}

	t.Run("Sunday belongs to the preceding Monday's week", func(t *testing.T) {
		sunday := time.Date(2026, 3, 22, 1, 0, 0, 0, time.UTC)
		if got := bucketKey(sunday, GranularityWeek); got != "2026-03-16" {
			t.Errorf("expected 2026-03-16, got %s", got)
		}
	})

	t.Run("Monday is its own week start", func(t *testing.T) {
		monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
		if got := bucketKey(monday, GranularityWeek); got != "2026-03-16" {
			t.Errorf("expected 2026-03-16, got %s", got)
		}
	})

	t.Run("week buckets may cross a month boundary", func(t *testing.T) {
		// Sunday 2026-03-01 falls in the week of Monday 2026-02-23.
		firstOfMarch := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		if got := bucketKey(firstOfMarch, GranularityWeek); got != "2026-02-23" {
			t.Errorf("expected 2026-02-23, got %s", got)
		}
	})
}
