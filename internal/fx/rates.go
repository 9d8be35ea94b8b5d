// Package fx fetches and caches foreign-exchange rate tables and
// converts multi-currency amounts into a single reporting currency.
package fx

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTable is an ephemeral snapshot of exchange rates for one base
// currency. Rates are expressed as "1 base = rate foreign". It is never
// persisted; the cache rebuilds it on miss or expiry.
type RateTable struct {
	Base      string
	Rates     map[string]decimal.Decimal
	FetchedAt time.Time
}

// Rate returns the rate for a currency and whether it is known.
func (t RateTable) Rate(currency string) (decimal.Decimal, bool) {
	r, ok := t.Rates[currency]
	return r, ok
}

// Money is an (amount, currency) pair to be aggregated.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// Convert converts an amount from currency into the table's base.
// The base itself and an empty currency pass through unchanged. An
// unknown currency also passes through unchanged: a conservative
// fallback that can understate totals but never zeroes out untracked
// currencies.
func Convert(amount decimal.Decimal, currency string, table RateTable) decimal.Decimal {
	if currency == "" || currency == table.Base {
		return amount
	}

	rate, ok := table.Rate(currency)
	if !ok || rate.IsZero() {
		return amount
	}

	return amount.Div(rate)
}

// SumConverted reduces (amount, currency) pairs into one base-currency
// total. No rounding is applied at the aggregate level; only postings
// round, so running totals do not accumulate extra rounding error.
func SumConverted(items []Money, table RateTable) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(Convert(item.Amount, item.Currency, table))
	}

	return total
}
