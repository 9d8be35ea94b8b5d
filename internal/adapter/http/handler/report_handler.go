package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/adapter/http/dto"
	"github.com/solobooks/ledger/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	ReportingTotal(ctx context.Context, input usecase.ReportingTotalInput) (decimal.Decimal, error)
}

// ReportHandler handles reporting HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Total returns an owner's balances summed into one base currency.
func (h *ReportHandler) Total(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "missing owner_id parameter", "")
		return
	}

	base := strings.ToUpper(r.URL.Query().Get("base"))
	currency := strings.ToUpper(r.URL.Query().Get("currency"))

	total, err := h.reportUC.ReportingTotal(r.Context(), usecase.ReportingTotalInput{
		OwnerID:        ownerID,
		Base:           base,
		CurrencyFilter: currency,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute total", err.Error())

		return
	}

	if base == "" {
		base = usecase.DefaultReportingCurrency
	}

	writeJSON(w, http.StatusOK, dto.TotalResponse{
		Base:  base,
		Total: total,
	})
}
