package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"owner_id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Currency    string           `json:"currency"`
	Balance     decimal.Decimal  `json:"balance"`
	Version     int64            `json:"version"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Status      string           `json:"status"`
	Institution string           `json:"institution,omitempty"`
	LastFour    string           `json:"last_four,omitempty"`
	OpenedOn    string           `json:"opened_on"`
	Notes       string           `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		Name:        a.Name,
		Type:        string(a.Type),
		Currency:    a.Currency,
		Balance:     a.Balance,
		Version:     a.Version,
		CreditLimit: a.CreditLimit,
		Status:      string(a.Status),
		Institution: a.Institution,
		LastFour:    a.LastFour,
		OpenedOn:    a.OpenedOn.Format(domain.DateFormat),
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// BalanceResponse reports an account balance after a posting.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Note          string          `json:"note,omitempty"`
	TransferDate  string          `json:"transfer_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferFromDomain converts domain transfer to response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:            t.ID,
		OwnerID:       t.OwnerID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Currency:      t.Currency,
		Note:          t.Note,
		TransferDate:  t.TransferDate.Format(domain.DateFormat),
		CreatedAt:     t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// TransferResultResponse carries the recorded transfer and both
// resulting balances.
type TransferResultResponse struct {
	Transfer       *TransferResponse `json:"transfer"`
	FromNewBalance decimal.Decimal   `json:"from_new_balance"`
	ToNewBalance   decimal.Decimal   `json:"to_new_balance"`
}

// TransferResultFromUseCase converts a transfer result to a response.
func TransferResultFromUseCase(r *usecase.TransferResult) *TransferResultResponse {
	return &TransferResultResponse{
		Transfer:       TransferFromDomain(r.Transfer),
		FromNewBalance: r.FromNewBalance,
		ToNewBalance:   r.ToNewBalance,
	}
}

// HistoryEntryResponse represents a balance history entry.
type HistoryEntryResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	BalanceDate string          `json:"balance_date"`
	Balance     decimal.Decimal `json:"balance"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HistoryEntryFromDomain converts a domain history entry to a response.
func HistoryEntryFromDomain(e *domain.HistoryEntry) *HistoryEntryResponse {
	return &HistoryEntryResponse{
		ID:          e.ID,
		AccountID:   e.AccountID,
		BalanceDate: e.BalanceDate.Format(domain.DateFormat),
		Balance:     e.Balance,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
	}
}

// HistoryEntriesFromDomain converts domain history entries to responses.
func HistoryEntriesFromDomain(entries []*domain.HistoryEntry) []*HistoryEntryResponse {
	result := make([]*HistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = HistoryEntryFromDomain(e)
	}
	return result
}

// SeriesPointResponse is one point of a chart-ready balance series.
type SeriesPointResponse struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// SeriesFromDomain converts series points to responses.
func SeriesFromDomain(points []domain.SeriesPoint) []SeriesPointResponse {
	result := make([]SeriesPointResponse, len(points))
	for i, p := range points {
		result[i] = SeriesPointResponse{
			Date:    p.Date.Format(domain.DateFormat),
			Balance: p.Balance,
		}
	}
	return result
}

// ExpenseEventResponse reports what an expense event did to the ledger.
type ExpenseEventResponse struct {
	Applied    bool            `json:"applied"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Warning    string          `json:"warning,omitempty"`
}

// ExpenseEventFromOutcome converts a posting outcome to a response.
func ExpenseEventFromOutcome(o usecase.PostingOutcome) *ExpenseEventResponse {
	return &ExpenseEventResponse{
		Applied:    o.Applied,
		NewBalance: o.NewBalance,
		Warning:    o.Warning,
	}
}

// TotalResponse reports a converted reporting total.
type TotalResponse struct {
	Base  string          `json:"base"`
	Total decimal.Decimal `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
