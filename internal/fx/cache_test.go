package fx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type stubProvider struct {
	calls int
	rates map[string]decimal.Decimal
	err   error
}

func (p *stubProvider) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}

	return p.rates, nil
}

func phpRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(0.018),
		"EUR": decimal.NewFromFloat(0.016),
	}
}

func TestCache_Rates_HitWithinTTL(t *testing.T) {
	provider := &stubProvider{rates: phpRates()}
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cache := NewCache(provider, zerolog.Nop(), WithClock(clock))

	first := cache.Rates(context.Background(), "PHP")
	now = now.Add(23 * time.Hour)
	second := cache.Rates(context.Background(), "PHP")

	if provider.calls != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", provider.calls)
	}

	if len(first.Rates) != len(second.Rates) {
		t.Errorf("expected identical tables, got %d vs %d rates", len(first.Rates), len(second.Rates))
	}

	for currency, rate := range first.Rates {
		if !second.Rates[currency].Equal(rate) {
			t.Errorf("rate for %s changed between calls: %s vs %s", currency, rate, second.Rates[currency])
		}
	}
}

func TestCache_Rates_RefreshAfterExpiry(t *testing.T) {
	provider := &stubProvider{rates: phpRates()}
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cache := NewCache(provider, zerolog.Nop(), WithClock(clock))

	cache.Rates(context.Background(), "PHP")
	now = now.Add(24*time.Hour + time.Minute)
	cache.Rates(context.Background(), "PHP")
	cache.Rates(context.Background(), "PHP")

	if provider.calls != 2 {
		t.Fatalf("expected exactly 2 fetches (one refresh), got %d", provider.calls)
	}
}

func TestCache_Rates_IdentityEntryInserted(t *testing.T) {
	provider := &stubProvider{rates: phpRates()}
	cache := NewCache(provider, zerolog.Nop())

	table := cache.Rates(context.Background(), "PHP")

	rate, ok := table.Rate("PHP")
	if !ok {
		t.Fatal("expected identity entry for base currency")
	}

	if !rate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected identity rate 1, got %s", rate)
	}
}

func TestCache_Rates_ProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	cache := NewCache(provider, zerolog.Nop())

	table := cache.Rates(context.Background(), "PHP")

	if len(table.Rates) != 0 {
		t.Errorf("expected empty table on provider failure, got %d rates", len(table.Rates))
	}

	// Failures are not cached: the next call must retry.
	cache.Rates(context.Background(), "PHP")
	if provider.calls != 2 {
		t.Errorf("expected retry after failure, got %d calls", provider.calls)
	}
}

func TestConvert(t *testing.T) {
	table := RateTable{
		Base: "PHP",
		Rates: map[string]decimal.Decimal{
			"PHP": decimal.NewFromInt(1),
			"USD": decimal.NewFromFloat(0.02),
		},
	}

	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"base currency unchanged", "100.00", "PHP", "100.00"},
		{"empty currency unchanged", "100.00", "", "100.00"},
		{"foreign divided by rate", "2.00", "USD", "100.00"},
		{"unknown currency unchanged", "55.00", "XYZ", "55.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, _ := decimal.NewFromString(tt.amount)
			want, _ := decimal.NewFromString(tt.want)

			got := Convert(amount, tt.currency, table)
			if !got.Equal(want) {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestSumConverted(t *testing.T) {
	table := RateTable{
		Base: "PHP",
		Rates: map[string]decimal.Decimal{
			"PHP": decimal.NewFromInt(1),
			"USD": decimal.NewFromFloat(0.02),
		},
	}

	items := []Money{
		{Amount: decimal.NewFromInt(1000), Currency: "PHP"},
		{Amount: decimal.NewFromInt(10), Currency: "USD"}, // 500 PHP
		{Amount: decimal.NewFromInt(7), Currency: "XYZ"},  // unknown, passes through
	}

	total := SumConverted(items, table)

	want := decimal.NewFromInt(1507)
	if !total.Equal(want) {
		t.Errorf("expected total %s, got %s", want, total)
	}
}

func TestSumConverted_Empty(t *testing.T) {
	total := SumConverted(nil, RateTable{Base: "USD"})
	if !total.IsZero() {
		t.Errorf("expected zero total, got %s", total)
	}
}
