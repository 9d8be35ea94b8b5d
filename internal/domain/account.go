package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the closed set of account kinds the ledger knows about.
// The posting sign rule dispatches on it; an unknown type is an error,
// never a silent default.
type AccountType string

const (
	TypeBankAccount AccountType = "bank_account"
	TypeCreditCard  AccountType = "credit_card"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == TypeBankAccount || t == TypeCreditCard
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive AccountStatus = "active"
	StatusClosed AccountStatus = "closed"
)

// Operation is the direction of a posting. Amounts are always
// non-negative; direction is carried here, not in the sign.
type Operation string

const (
	OpAdd    Operation = "add"
	OpRemove Operation = "remove"
)

// Account represents one bank account or credit card owned by a user.
// For a bank account the balance is what the user holds; for a credit
// card it is what the user owes.
type Account struct {
	ID          string
	OwnerID     string
	Name        string
	Type        AccountType
	Currency    string
	Balance     decimal.Decimal
	Version     int64
	CreditLimit *decimal.Decimal
	Status      AccountStatus
	Institution string
	LastFour    string
	OpenedOn    time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Round2 rounds a monetary amount to 2 decimal places, half away from
// zero, so repeated postings cannot accumulate drift.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PostingDelta returns the signed balance delta for a posting of amount
// under the given operation and account type.
//
// Sign rule: spending ("add") increases what you owe on a credit card
// but decreases what you hold in a bank account; "remove" is the exact
// inverse.
func PostingDelta(t AccountType, op Operation, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}

	switch t {
	case TypeCreditCard:
		switch op {
		case OpAdd:
			return amount, nil
		case OpRemove:
			return amount.Neg(), nil
		}
	case TypeBankAccount:
		switch op {
		case OpAdd:
			return amount.Neg(), nil
		case OpRemove:
			return amount, nil
		}
	default:
		return decimal.Zero, ErrUnknownAccountType
	}

	return decimal.Zero, ErrUnknownOperation
}

// ApplyPosting returns the account balance after a posting of amount
// under op, rounded to 2 decimals. The receiver is not mutated.
func (a *Account) ApplyPosting(op Operation, amount decimal.Decimal) (decimal.Decimal, error) {
	delta, err := PostingDelta(a.Type, op, amount)
	if err != nil {
		return decimal.Zero, err
	}

	return Round2(a.Balance.Add(delta)), nil
}

// ApplyTransferOut returns the source-side balance after a transfer.
// Leaving an account always reduces what can be drawn from it,
// regardless of type.
func (a *Account) ApplyTransferOut(amount decimal.Decimal) decimal.Decimal {
	return Round2(a.Balance.Sub(amount))
}

// ApplyTransferIn returns the destination-side balance after a
// transfer. A bank account is credited with the funds; a credit card is
// relieved, because paying into a card reduces what is owed on it.
func (a *Account) ApplyTransferIn(amount decimal.Decimal) (decimal.Decimal, error) {
	switch a.Type {
	case TypeBankAccount:
		return Round2(a.Balance.Add(amount)), nil
	case TypeCreditCard:
		return Round2(a.Balance.Sub(amount)), nil
	default:
		return decimal.Zero, ErrUnknownAccountType
	}
}

// IsActive reports whether the account can participate in postings and
// transfers.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}
