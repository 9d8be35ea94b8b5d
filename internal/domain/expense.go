package domain

import "github.com/shopspring/decimal"

// Expense is the slice of the back-office expense entity the ledger
// cares about. The expense CRUD layer owns the full record; when
// AccountID is set, the amount drives a posting against that account on
// create, edit and delete.
type Expense struct {
	ID        string
	OwnerID   string
	AccountID string
	Amount    decimal.Decimal
	Currency  string
	Category  string
	Vendor    string
}

// Linked reports whether the expense is tied to an account and should
// affect a balance.
func (e *Expense) Linked() bool {
	return e.AccountID != ""
}
