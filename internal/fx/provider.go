package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Provider fetches a fresh rate table for a base currency from an
// external service. Treated as unreliable and rate-limited; the cache
// in front of it absorbs both.
type Provider interface {
	FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// HTTPProvider fetches rates from an exchange-rate HTTP API that
// responds with {"base": "...", "rates": {"EUR": 0.92, ...}}.
type HTTPProvider struct {
	client  *http.Client
	baseURL string
}

// NewHTTPProvider creates a provider against the given API base URL,
// e.g. "https://open.er-api.com/v6/latest".
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type ratesResponse struct {
	Base  string                     `json:"base_code"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates fetches the rate table for base.
func (p *HTTPProvider) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+base, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates for %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d for %s", resp.StatusCode, base)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}

	return payload.Rates, nil
}
