package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountClosed      = errors.New("account is closed")
	ErrUnknownAccountType = errors.New("unknown account type")
	ErrUnknownOperation   = errors.New("unknown posting operation")
	ErrVersionConflict    = errors.New("account was modified concurrently")

	// Transfer errors
	ErrSameAccount      = errors.New("cannot transfer to same account")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrCurrencyMismatch = errors.New("cannot transfer between different currencies")
	ErrTransferNotFound = errors.New("transfer not found")
)
