package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction, preventing long-running transactions from holding
	// account row locks.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultReportingCurrency is used when a reporting request does
	// not name a base currency.
	DefaultReportingCurrency = "USD"

	// seriesFetchLimit bounds how many history entries one chart pulls.
	seriesFetchLimit = 1000
)
