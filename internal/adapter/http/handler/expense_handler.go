package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/solobooks/ledger/internal/adapter/http/dto"
	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	OnExpenseCreated(ctx context.Context, expense *domain.Expense) (usecase.PostingOutcome, error)
	OnExpenseDeleted(ctx context.Context, expense *domain.Expense) (usecase.PostingOutcome, error)
	OnExpenseEdited(ctx context.Context, old, updated *domain.Expense) (usecase.PostingOutcome, error)
}

// ExpenseHandler receives expense lifecycle events from the expense
// CRUD layer and applies their balance effects.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// HandleEvent applies one expense lifecycle event.
func (h *ExpenseHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpenseEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense := req.Expense.ToDomain()

	var (
		outcome usecase.PostingOutcome
		err     error
	)

	switch req.Event {
	case dto.ExpenseEventCreated:
		outcome, err = h.expenseUC.OnExpenseCreated(r.Context(), expense)
	case dto.ExpenseEventDeleted:
		outcome, err = h.expenseUC.OnExpenseDeleted(r.Context(), expense)
	case dto.ExpenseEventEdited:
		if req.Previous == nil {
			writeError(w, http.StatusBadRequest, "edited event requires previous expense", "")
			return
		}
		outcome, err = h.expenseUC.OnExpenseEdited(r.Context(), req.Previous.ToDomain(), expense)
	default:
		writeError(w, http.StatusBadRequest, "unknown event", req.Event)
		return
	}

	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to process expense event", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseEventFromOutcome(outcome))
}
