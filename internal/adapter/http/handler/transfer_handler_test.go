package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/adapter/http/dto"
	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/usecase"
)

type transferServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error)
	getFn    func(ctx context.Context, id string) (*domain.Transfer, error)
	listFn   func(ctx context.Context, input usecase.ListTransfersByAccountInput) ([]*domain.Transfer, error)
}

func (s *transferServiceStub) CreateTransfer(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error) {
	return s.createFn(ctx, input)
}

func (s *transferServiceStub) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return s.getFn(ctx, id)
}

func (s *transferServiceStub) ListTransfersByAccount(ctx context.Context, input usecase.ListTransfersByAccountInput) ([]*domain.Transfer, error) {
	return s.listFn(ctx, input)
}

func TestTransferHandler_Create_Success(t *testing.T) {
	result := &usecase.TransferResult{
		Transfer: &domain.Transfer{
			ID:            "tr-1",
			FromAccountID: "acc-1",
			ToAccountID:   "acc-2",
			Amount:        decimal.RequireFromString("500"),
			Currency:      "PHP",
		},
		FromNewBalance: decimal.RequireFromString("4500"),
		ToNewBalance:   decimal.RequireFromString("1500"),
	}

	var captured usecase.CreateTransferInput
	handler := NewTransferHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error) {
			captured = input
			return result, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		OwnerID:       "owner-1",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        decimal.RequireFromString("500"),
		Note:          "card payment",
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.FromAccountID != "acc-1" || captured.ToAccountID != "acc-2" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.TransferResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Transfer.ID != "tr-1" {
		t.Fatalf("expected transfer tr-1, got %s", resp.Transfer.ID)
	}
	if !resp.FromNewBalance.Equal(decimal.RequireFromString("4500")) {
		t.Fatalf("expected from balance 4500, got %s", resp.FromNewBalance)
	}
}

func TestTransferHandler_Create_SameAccount(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error) {
			return nil, domain.ErrSameAccount
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-1",
		Amount:        decimal.NewFromInt(100),
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_ClosedAccount(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error) {
			return nil, domain.ErrAccountClosed
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        decimal.NewFromInt(100),
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_InvalidDate(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error) {
			t.Fatal("CreateTransfer should not be called for invalid date")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        decimal.NewFromInt(100),
		TransferDate:  "15-08-2026",
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Get(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return &domain.Transfer{ID: id}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transfers/tr-1", nil)
	req = setChiURLParam(req, "id", "tr-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTransferHandler_Get_NotFound(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return nil, domain.ErrTransferNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transfers/tr-404", nil)
	req = setChiURLParam(req, "id", "tr-404")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransferHandler_ListByAccount(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransfersByAccountInput) ([]*domain.Transfer, error) {
			if input.AccountID != "acc-1" {
				t.Fatalf("expected acc-1, got %s", input.AccountID)
			}
			return []*domain.Transfer{{ID: "tr-1"}, {ID: "tr-2"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/transfers", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.TransferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(resp))
	}
}
