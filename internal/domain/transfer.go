package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer records a completed movement of funds between two accounts
// of the same currency. Created once per successful transfer, never
// mutated.
type Transfer struct {
	ID            string
	OwnerID       string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Currency      string
	Note          string
	TransferDate  time.Time
	CreatedAt     time.Time
}

// Validate checks the request-level invariants. Currency and account
// status are validated against the loaded accounts by the orchestrator.
func (t *Transfer) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
