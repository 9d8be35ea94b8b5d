package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	OwnerID        string           `json:"owner_id"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	Currency       string           `json:"currency"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	CreditLimit    *decimal.Decimal `json:"credit_limit,omitempty"`
	Institution    string           `json:"institution,omitempty"`
	LastFour       string           `json:"last_four,omitempty"`
	OpenedOn       string           `json:"opened_on,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() (usecase.CreateAccountInput, error) {
	input := usecase.CreateAccountInput{
		OwnerID:        r.OwnerID,
		Name:           r.Name,
		Type:           domain.AccountType(r.Type),
		Currency:       r.Currency,
		OpeningBalance: r.OpeningBalance,
		CreditLimit:    r.CreditLimit,
		Institution:    r.Institution,
		LastFour:       r.LastFour,
		Notes:          r.Notes,
	}

	if r.OpenedOn != "" {
		openedOn, err := time.Parse(domain.DateFormat, r.OpenedOn)
		if err != nil {
			return usecase.CreateAccountInput{}, err
		}
		input.OpenedOn = &openedOn
	}

	return input, nil
}

// UpdateBalanceRequest represents a manual balance correction.
type UpdateBalanceRequest struct {
	OwnerID string          `json:"owner_id"`
	Balance decimal.Decimal `json:"balance"`
	Note    string          `json:"note,omitempty"`
	Date    string          `json:"date,omitempty"`
}

// ParseDate parses the optional balance date, defaulting to now.
func (r *UpdateBalanceRequest) ParseDate() (time.Time, error) {
	if r.Date == "" {
		return time.Now().UTC(), nil
	}

	return time.Parse(domain.DateFormat, r.Date)
}

// CreateTransferRequest represents a request to create a transfer.
type CreateTransferRequest struct {
	OwnerID       string          `json:"owner_id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	TransferDate  string          `json:"transfer_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() (usecase.CreateTransferInput, error) {
	input := usecase.CreateTransferInput{
		OwnerID:       r.OwnerID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Note:          r.Note,
	}

	if r.TransferDate != "" {
		transferDate, err := time.Parse(domain.DateFormat, r.TransferDate)
		if err != nil {
			return usecase.CreateTransferInput{}, err
		}
		input.TransferDate = &transferDate
	}

	return input, nil
}

// Expense lifecycle event names.
const (
	ExpenseEventCreated = "created"
	ExpenseEventDeleted = "deleted"
	ExpenseEventEdited  = "edited"
)

// ExpensePayload is the ledger-relevant slice of an expense record.
type ExpensePayload struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	AccountID string          `json:"account_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Category  string          `json:"category,omitempty"`
	Vendor    string          `json:"vendor,omitempty"`
}

// ToDomain converts the payload to a domain expense.
func (p *ExpensePayload) ToDomain() *domain.Expense {
	return &domain.Expense{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		AccountID: p.AccountID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Category:  p.Category,
		Vendor:    p.Vendor,
	}
}

// ExpenseEventRequest represents an expense lifecycle notification from
// the expense CRUD layer. Previous is required for edited events.
type ExpenseEventRequest struct {
	Event    string          `json:"event"`
	Expense  ExpensePayload  `json:"expense"`
	Previous *ExpensePayload `json:"previous,omitempty"`
}
