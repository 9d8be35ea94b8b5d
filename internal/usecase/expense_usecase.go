package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/infrastructure/metrics"
)

// ExpenseUseCase translates expense lifecycle events from the CRUD
// layer into postings against the linked account. An unlinked expense
// never touches the ledger.
type ExpenseUseCase struct {
	posting *PostingUseCase
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewExpenseUseCase creates a new ExpenseUseCase. metrics may be nil.
func NewExpenseUseCase(posting *PostingUseCase, logger zerolog.Logger, m *metrics.Metrics) *ExpenseUseCase {
	return &ExpenseUseCase{
		posting: posting,
		logger:  logger,
		metrics: m,
	}
}

// PostingOutcome reports what a lifecycle event did to the ledger. The
// expense action itself succeeds even when Applied is false; Warning
// explains the missing balance effect so it never fails silently.
type PostingOutcome struct {
	Applied    bool
	NewBalance decimal.Decimal
	Warning    string
}

// OnExpenseCreated posts the expense amount against the linked account.
func (uc *ExpenseUseCase) OnExpenseCreated(ctx context.Context, expense *domain.Expense) (PostingOutcome, error) {
	if !expense.Linked() {
		return PostingOutcome{}, nil
	}

	return uc.apply(ctx, "created", expense.AccountID, expense.OwnerID, expense.Amount, domain.OpAdd,
		fmt.Sprintf("Expense: %s - %s", expense.Category, expense.Vendor))
}

// OnExpenseDeleted reverses the creation posting exactly.
func (uc *ExpenseUseCase) OnExpenseDeleted(ctx context.Context, expense *domain.Expense) (PostingOutcome, error) {
	if !expense.Linked() {
		return PostingOutcome{}, nil
	}

	return uc.apply(ctx, "deleted", expense.AccountID, expense.OwnerID, expense.Amount, domain.OpRemove,
		fmt.Sprintf("Expense deleted: %s", expense.Category))
}

// OnExpenseEdited posts only the incremental change between the old and
// the updated expense. A zero delta produces no posting and no history
// entry. When the linked account itself changed, the old account gets a
// removal posting and the new account a creation posting.
func (uc *ExpenseUseCase) OnExpenseEdited(ctx context.Context, old, updated *domain.Expense) (PostingOutcome, error) {
	if old.AccountID != updated.AccountID {
		if old.Linked() {
			outcome, err := uc.apply(ctx, "edited", old.AccountID, old.OwnerID, old.Amount, domain.OpRemove,
				fmt.Sprintf("Expense moved from account: %s", old.Category))
			if err != nil {
				return outcome, err
			}
		}

		if !updated.Linked() {
			return PostingOutcome{}, nil
		}

		return uc.apply(ctx, "edited", updated.AccountID, updated.OwnerID, updated.Amount, domain.OpAdd,
			fmt.Sprintf("Expense: %s - %s", updated.Category, updated.Vendor))
	}

	if !updated.Linked() {
		return PostingOutcome{}, nil
	}

	delta := domain.Round2(updated.Amount.Sub(old.Amount))
	if delta.IsZero() {
		return PostingOutcome{}, nil
	}

	op := domain.OpAdd
	if delta.IsNegative() {
		op = domain.OpRemove
	}

	return uc.apply(ctx, "edited", updated.AccountID, updated.OwnerID, delta.Abs(), op,
		fmt.Sprintf("Expense edited: %s", updated.Category))
}

// apply runs one posting and degrades a missing or closed account into
// a warning outcome: the expense action proceeds without a balance
// effect, and the gap stays discoverable in the history trail.
func (uc *ExpenseUseCase) apply(ctx context.Context, event, accountID, ownerID string, amount decimal.Decimal, op domain.Operation, note string) (PostingOutcome, error) {
	newBalance, err := uc.posting.Post(ctx, PostInput{
		AccountID: accountID,
		OwnerID:   ownerID,
		Amount:    amount,
		Op:        op,
		Note:      note,
		Date:      time.Now().UTC(),
	})

	switch {
	case err == nil:
		uc.countEvent(event, "applied")

		return PostingOutcome{Applied: true, NewBalance: newBalance}, nil
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrAccountClosed):
		uc.logger.Warn().
			Str("account_id", accountID).
			Str("op", string(op)).
			Err(err).
			Msg("expense posting skipped, balance not adjusted")
		uc.countEvent(event, "skipped")

		return PostingOutcome{Warning: fmt.Sprintf("balance not adjusted: %v", err)}, nil
	default:
		uc.countEvent(event, "error")

		return PostingOutcome{}, err
	}
}

func (uc *ExpenseUseCase) countEvent(event, outcome string) {
	if uc.metrics != nil {
		uc.metrics.ExpenseEvents.WithLabelValues(event, outcome).Inc()
	}
}
