package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/adapter/http/dto"
	"github.com/solobooks/ledger/internal/domain"
)

type historyServiceStub struct {
	historyFn func(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryEntry, error)
	seriesFn  func(ctx context.Context, accountID string) ([]domain.SeriesPoint, error)
}

func (s *historyServiceStub) History(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryEntry, error) {
	return s.historyFn(ctx, accountID, limit, offset)
}

func (s *historyServiceStub) BalanceSeries(ctx context.Context, accountID string) ([]domain.SeriesPoint, error) {
	return s.seriesFn(ctx, accountID)
}

func TestHistoryHandler_ListByAccount(t *testing.T) {
	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	svc := &historyServiceStub{
		historyFn: func(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryEntry, error) {
			if accountID != "acc-1" {
				t.Errorf("expected account acc-1, got %s", accountID)
			}
			if limit != 5 || offset != 10 {
				t.Errorf("expected limit 5 offset 10, got %d/%d", limit, offset)
			}
			return []*domain.HistoryEntry{
				{
					ID:          "h-1",
					AccountID:   accountID,
					BalanceDate: date,
					Balance:     decimal.RequireFromString("1234.56"),
					Note:        "statement",
				},
			}, nil
		},
	}
	handler := NewHistoryHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/history?limit=5&offset=10", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var entries []*dto.HistoryEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].BalanceDate != "2026-08-01" {
		t.Errorf("expected balance_date 2026-08-01, got %s", entries[0].BalanceDate)
	}
}

func TestHistoryHandler_ListByAccount_Error(t *testing.T) {
	svc := &historyServiceStub{
		historyFn: func(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryEntry, error) {
			return nil, errors.New("db down")
		},
	}
	handler := NewHistoryHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/history", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHistoryHandler_Series(t *testing.T) {
	svc := &historyServiceStub{
		seriesFn: func(ctx context.Context, accountID string) ([]domain.SeriesPoint, error) {
			return []domain.SeriesPoint{
				{Date: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Balance: decimal.NewFromInt(100)},
				{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Balance: decimal.NewFromInt(250)},
			}, nil
		},
	}
	handler := NewHistoryHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/series", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Series(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var points []dto.SeriesPointResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Date != "2026-07-01" || !points[0].Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("unexpected first point: %+v", points[0])
	}
}
