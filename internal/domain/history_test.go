package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSeries(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	entries := []*HistoryEntry{
		{AccountID: "acc-1", BalanceDate: day(15), Balance: decimal.NewFromInt(300)},
		{AccountID: "acc-1", BalanceDate: day(1), Balance: decimal.NewFromInt(500)},
		{AccountID: "acc-1", BalanceDate: day(7), Balance: decimal.NewFromInt(420)},
	}

	points := Series(entries)

	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	for i := 1; i < len(points); i++ {
		if points[i].Date.Before(points[i-1].Date) {
			t.Errorf("series not ascending at index %d: %s before %s", i, points[i].Date, points[i-1].Date)
		}
	}

	if !points[0].Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected first point balance 500, got %s", points[0].Balance)
	}

	// Input order must be untouched.
	if !entries[0].BalanceDate.Equal(day(15)) {
		t.Error("input slice was reordered")
	}

	// Repeated calls yield the same result.
	again := Series(entries)
	for i := range points {
		if !again[i].Date.Equal(points[i].Date) || !again[i].Balance.Equal(points[i].Balance) {
			t.Fatalf("second call diverged at index %d", i)
		}
	}
}

func TestSeries_Empty(t *testing.T) {
	points := Series(nil)
	if len(points) != 0 {
		t.Errorf("expected empty series, got %d points", len(points))
	}
}
