package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solobooks/ledger/internal/adapter/http/dto"
	"github.com/solobooks/ledger/internal/domain"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	History(ctx context.Context, accountID string, limit, offset int) ([]*domain.HistoryEntry, error)
	BalanceSeries(ctx context.Context, accountID string) ([]domain.SeriesPoint, error)
}

// HistoryHandler handles balance history HTTP requests.
type HistoryHandler struct {
	reportUC HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(reportUC HistoryService) *HistoryHandler {
	return &HistoryHandler{reportUC: reportUC}
}

// ListByAccount lists history entries for an account, newest first.
func (h *HistoryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.reportUC.History(r.Context(), accountID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryEntriesFromDomain(entries))
}

// Series returns the chart-ready balance series for an account, oldest
// first.
func (h *HistoryHandler) Series(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	points, err := h.reportUC.BalanceSeries(r.Context(), accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build series", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SeriesFromDomain(points))
}
