package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/infrastructure/metrics"
)

// PostingUseCase is the balance posting primitive: every mutation of an
// account balance goes through it, and every posting appends exactly
// one history entry in the same transaction.
//
// The primitive is not idempotent; callers must attempt one posting per
// causing event. The HTTP layer closes the resubmission gap with
// idempotency keys.
type PostingUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	historyRepo HistoryRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewPostingUseCase creates a new PostingUseCase. metrics may be nil.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	historyRepo HistoryRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     m,
	}
}

// PostInput represents one posting. Amount is non-negative; direction
// is carried by Op, not the sign.
type PostInput struct {
	AccountID string
	OwnerID   string
	Amount    decimal.Decimal
	Op        domain.Operation
	Note      string
	Date      time.Time
}

// Post applies the type- and operation-determined signed delta to the
// account balance and appends a history entry, atomically. Returns the
// new balance. Version conflicts from concurrent postings are retried.
func (uc *PostingUseCase) Post(ctx context.Context, input PostInput) (decimal.Decimal, error) {
	if input.Amount.IsNegative() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	var newBalance decimal.Decimal

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		newBalance, err = uc.postOnce(ctx, input)
		return err
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.PostingErrors.WithLabelValues(errorTypeLabel(err)).Inc()
		}

		return decimal.Zero, err
	}

	if uc.metrics != nil {
		uc.metrics.PostingsApplied.WithLabelValues(string(input.Op)).Inc()
	}

	return newBalance, nil
}

func (uc *PostingUseCase) postOnce(ctx context.Context, input PostInput) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return decimal.Zero, err
	}

	if input.OwnerID != "" && account.OwnerID != input.OwnerID {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	if !account.IsActive() {
		return decimal.Zero, domain.ErrAccountClosed
	}

	newBalance, err := account.ApplyPosting(input.Op, input.Amount)
	if err != nil {
		return decimal.Zero, err
	}

	now := time.Now().UTC()

	if err := uc.writeBalance(ctx, tx, account, newBalance, input.Note, input.Date, now); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}

// PostManualBalance is a direct correction: the new balance is set as
// given rather than derived from a delta, but it still goes through the
// append-only history mechanism.
func (uc *PostingUseCase) PostManualBalance(ctx context.Context, accountID, ownerID string, balance decimal.Decimal, note string, date time.Time) (decimal.Decimal, error) {
	newBalance := domain.Round2(balance)

	if note == "" {
		note = "Manual balance update"
	}

	err := uc.retrier.Retry(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}

		if ownerID != "" && account.OwnerID != ownerID {
			return domain.ErrAccountNotFound
		}

		if !account.IsActive() {
			return domain.ErrAccountClosed
		}

		if err := uc.writeBalance(ctx, tx, account, newBalance, note, date, time.Now().UTC()); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return decimal.Zero, err
	}

	if uc.metrics != nil {
		uc.metrics.PostingsApplied.WithLabelValues("manual").Inc()
	}

	return newBalance, nil
}

// writeBalance persists the new balance under a version compare-and-swap
// and appends the history entry carrying the resulting absolute
// balance. Both writes share tx, so a history failure aborts the
// balance update as well.
func (uc *PostingUseCase) writeBalance(ctx context.Context, tx Transaction, account *domain.Account, newBalance decimal.Decimal, note string, date, now time.Time) error {
	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, account.Version, now); err != nil {
		return err
	}

	if date.IsZero() {
		date = now
	}

	entry := &domain.HistoryEntry{
		ID:          uc.idGen.Generate(),
		AccountID:   account.ID,
		OwnerID:     account.OwnerID,
		BalanceDate: date,
		Balance:     newBalance,
		Note:        note,
		CreatedAt:   now,
	}

	return uc.historyRepo.Create(ctx, tx, entry)
}
