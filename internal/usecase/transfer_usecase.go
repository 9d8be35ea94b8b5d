package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates moving funds between two accounts:
// both balance updates, both history entries and the transfer record
// are committed in one transaction or not at all.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	historyRepo  HistoryRepository
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. metrics may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	historyRepo HistoryRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		historyRepo:  historyRepo,
		idGen:        idGen,
		retrier:      retrier,
		metrics:      m,
	}
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	OwnerID       string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Note          string
	TransferDate  *time.Time
}

// TransferResult carries the recorded transfer and both resulting
// balances.
type TransferResult struct {
	Transfer       *domain.Transfer
	FromNewBalance decimal.Decimal
	ToNewBalance   decimal.Decimal
}

// CreateTransfer validates and executes a transfer. Validation fails
// fast with zero writes; version conflicts are retried.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	start := time.Now()

	var result *TransferResult

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		result, err = uc.transferOnce(ctx, input)
		return err
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.TransferErrors.WithLabelValues(errorTypeLabel(err)).Inc()
		}

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func errorTypeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountClosed):
		return "account_closed"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrVersionConflict):
		return "version_conflict"
	default:
		return "internal"
	}
}

func (uc *TransferUseCase) transferOnce(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both accounts in sorted order (deadlock prevention).
	ids := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	var from, to *domain.Account
	for _, account := range accounts {
		switch account.ID {
		case input.FromAccountID:
			from = account
		case input.ToAccountID:
			to = account
		}
	}

	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if input.OwnerID != "" && (from.OwnerID != input.OwnerID || to.OwnerID != input.OwnerID) {
		return nil, domain.ErrAccountNotFound
	}

	if !from.IsActive() || !to.IsActive() {
		return nil, domain.ErrAccountClosed
	}

	// Cross-currency transfers are rejected outright; the user
	// reconciles currencies manually.
	if from.Currency != to.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	fromNewBalance := from.ApplyTransferOut(input.Amount)

	toNewBalance, err := to.ApplyTransferIn(input.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	transferDate := now
	if input.TransferDate != nil {
		transferDate = *input.TransferDate
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, from.ID, fromNewBalance, from.Version, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, to.ID, toNewBalance, to.Version, now); err != nil {
		return nil, err
	}

	fromNote := fmt.Sprintf("Transfer to %s", to.Name)
	toNote := fmt.Sprintf("Transfer from %s", from.Name)
	if input.Note != "" {
		fromNote = fmt.Sprintf("%s: %s", fromNote, input.Note)
		toNote = fmt.Sprintf("%s: %s", toNote, input.Note)
	}

	fromEntry := &domain.HistoryEntry{
		ID:          uc.idGen.Generate(),
		AccountID:   from.ID,
		OwnerID:     from.OwnerID,
		BalanceDate: transferDate,
		Balance:     fromNewBalance,
		Note:        fromNote,
		CreatedAt:   now,
	}
	if err := uc.historyRepo.Create(ctx, tx, fromEntry); err != nil {
		return nil, err
	}

	toEntry := &domain.HistoryEntry{
		ID:          uc.idGen.Generate(),
		AccountID:   to.ID,
		OwnerID:     to.OwnerID,
		BalanceDate: transferDate,
		Balance:     toNewBalance,
		Note:        toNote,
		CreatedAt:   now,
	}
	if err := uc.historyRepo.Create(ctx, tx, toEntry); err != nil {
		return nil, err
	}

	transfer := &domain.Transfer{
		ID:            uc.idGen.Generate(),
		OwnerID:       from.OwnerID,
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        domain.Round2(input.Amount),
		Currency:      from.Currency,
		Note:          input.Note,
		TransferDate:  transferDate,
		CreatedAt:     now,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransferResult{
		Transfer:       transfer,
		FromNewBalance: fromNewBalance,
		ToNewBalance:   toNewBalance,
	}, nil
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByID(ctx, id)
}

// ListTransfersByAccountInput represents input for listing transfers.
type ListTransfersByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransfersByAccount lists transfers for an account.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, input ListTransfersByAccountInput) ([]*domain.Transfer, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.transferRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
