package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/fx"
)

// ReportUseCase serves the reporting surfaces: multi-currency balance
// totals and per-account balance series. Read-only.
type ReportUseCase struct {
	accountRepo AccountRepository
	historyRepo HistoryRepository
	rates       RateSource
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(accountRepo AccountRepository, historyRepo HistoryRepository, rates RateSource) *ReportUseCase {
	return &ReportUseCase{
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		rates:       rates,
	}
}

// ReportingTotalInput represents input for a reporting total.
type ReportingTotalInput struct {
	OwnerID string
	Base    string
	// CurrencyFilter, when set, restricts the total to accounts held
	// in that currency.
	CurrencyFilter string
}

// ReportingTotal sums an owner's account balances into one
// base-currency total via the rate cache. No rounding is applied at
// the aggregate level. A degraded rate table leaves unconvertible
// balances unchanged rather than failing the report.
func (uc *ReportUseCase) ReportingTotal(ctx context.Context, input ReportingTotalInput) (decimal.Decimal, error) {
	if input.Base == "" {
		input.Base = DefaultReportingCurrency
	}

	accounts, err := uc.accountRepo.ListByOwner(ctx, input.OwnerID, seriesFetchLimit, 0)
	if err != nil {
		return decimal.Zero, err
	}

	items := make([]fx.Money, 0, len(accounts))
	for _, account := range accounts {
		if input.CurrencyFilter != "" && account.Currency != input.CurrencyFilter {
			continue
		}

		items = append(items, fx.Money{Amount: account.Balance, Currency: account.Currency})
	}

	table := uc.rates.Rates(ctx, input.Base)

	return fx.SumConverted(items, table), nil
}

// BalanceSeries reduces an account's history into a chronologically
// ordered series for charting.
func (uc *ReportUseCase) BalanceSeries(ctx context.Context, accountID string) ([]domain.SeriesPoint, error) {
	entries, err := uc.historyRepo.ListByAccount(ctx, accountID, seriesFetchLimit, 0)
	if err != nil {
		return nil, err
	}

	return domain.Series(entries), nil
}

// History lists an account's raw history entries with pagination.
func (uc *ReportUseCase) History(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryEntry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.historyRepo.ListByAccount(ctx, accountID, limit, offset)
}
