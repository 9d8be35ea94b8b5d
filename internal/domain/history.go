package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the wire/storage format for calendar dates
// (balance_date, transfer_date, opened_on). No time component.
const DateFormat = "2006-01-02"

// HistoryEntry is an immutable audit record of an account balance after
// a posting. It is append-only: every posting, transfer and manual
// correction writes exactly one, and no posting may bypass it.
type HistoryEntry struct {
	ID          string
	AccountID   string
	OwnerID     string
	BalanceDate time.Time
	Balance     decimal.Decimal
	Note        string
	CreatedAt   time.Time
}

// SeriesPoint is one point of a balance chart.
type SeriesPoint struct {
	Date    time.Time
	Balance decimal.Decimal
}

// Series reduces history entries into a chronologically ordered series
// for charting. Pure: the input slice is not modified and repeated
// calls yield the same result.
func Series(entries []*HistoryEntry) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, SeriesPoint{Date: e.BalanceDate, Balance: e.Balance})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}
