package fx

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultTTL is how long a fetched rate table stays valid.
const DefaultTTL = 24 * time.Hour

var (
	fxFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_fx_fetches_total",
			Help: "Total number of rate provider fetches by outcome",
		},
		[]string{"outcome"},
	)

	fxCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_fx_cache_hits_total",
			Help: "Total number of rate cache hits",
		},
	)
)

// Cache is an in-process rate cache keyed by base currency. Entries are
// replaced wholesale on expiry, so concurrent readers see either the
// stale or the fresh table, never a torn one. The clock is injectable
// so TTL expiry is testable.
type Cache struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time
	logger   zerolog.Logger

	mu      sync.RWMutex
	entries map[string]RateTable
}

// CacheOption customizes a Cache.
type CacheOption func(*Cache)

// WithTTL overrides the default 24h time-to-live.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a rate cache in front of a provider.
func NewCache(provider Provider, logger zerolog.Logger, opts ...CacheOption) *Cache {
	c := &Cache{
		provider: provider,
		ttl:      DefaultTTL,
		now:      time.Now,
		logger:   logger,
		entries:  make(map[string]RateTable),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Rates returns the rate table for base, fetching from the provider on
// a cache miss or after TTL expiry. A provider failure degrades to an
// empty table rather than an error: callers treat unknown currencies as
// unconvertible, and FX availability never blocks the primary workflow.
// Failed fetches are not cached, so the next call retries.
func (c *Cache) Rates(ctx context.Context, base string) RateTable {
	c.mu.RLock()
	entry, ok := c.entries[base]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.FetchedAt) < c.ttl {
		fxCacheHitsTotal.Inc()
		return entry
	}

	rates, err := c.provider.FetchRates(ctx, base)
	if err != nil {
		fxFetchesTotal.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Str("base", base).Msg("rate fetch failed, conversions degraded")

		return RateTable{Base: base, Rates: map[string]decimal.Decimal{}, FetchedAt: c.now()}
	}

	fxFetchesTotal.WithLabelValues("success").Inc()

	table := RateTable{
		Base:      base,
		Rates:     make(map[string]decimal.Decimal, len(rates)+1),
		FetchedAt: c.now(),
	}
	for currency, rate := range rates {
		table.Rates[currency] = rate
	}
	// A currency always equals itself 1:1.
	table.Rates[base] = decimal.NewFromInt(1)

	c.mu.Lock()
	c.entries[base] = table
	c.mu.Unlock()

	return table
}
