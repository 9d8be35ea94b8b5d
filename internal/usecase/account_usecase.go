package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solobooks/ledger/internal/domain"
	"github.com/solobooks/ledger/internal/infrastructure/metrics"
)

// AccountUseCase handles the account lifecycle. Creation writes the
// account and its first history entry ("Opening balance") atomically,
// so the invariant that the balance equals the latest history entry
// holds from the very first row.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	historyRepo HistoryRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. metrics may be nil.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	historyRepo HistoryRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerID        string
	Name           string
	Type           domain.AccountType
	Currency       string
	OpeningBalance decimal.Decimal
	CreditLimit    *decimal.Decimal
	Institution    string
	LastFour       string
	OpenedOn       *time.Time
	Notes          string
}

// CreateAccount creates a new account with an explicit opening balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	if !input.Type.Valid() {
		return nil, domain.ErrUnknownAccountType
	}

	now := time.Now().UTC()

	openedOn := now
	if input.OpenedOn != nil {
		openedOn = *input.OpenedOn
	}

	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Type:        input.Type,
		Currency:    input.Currency,
		Balance:     domain.Round2(input.OpeningBalance),
		Version:     0,
		CreditLimit: input.CreditLimit,
		Status:      domain.StatusActive,
		Institution: input.Institution,
		LastFour:    input.LastFour,
		OpenedOn:    openedOn,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	entry := &domain.HistoryEntry{
		ID:          uc.idGen.Generate(),
		AccountID:   account.ID,
		OwnerID:     account.OwnerID,
		BalanceDate: openedOn,
		Balance:     account.Balance,
		Note:        "Opening balance",
		CreatedAt:   now,
	}
	if err := uc.historyRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.WithLabelValues(string(account.Type)).Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	OwnerID string
	Limit   int
	Offset  int
}

// ListAccounts lists an owner's accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.ListByOwner(ctx, input.OwnerID, limit, offset)
}

// CloseAccount marks an account closed. History is retained; closed
// accounts reject further postings and transfers.
func (uc *AccountUseCase) CloseAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if account.Status == domain.StatusClosed {
		return nil
	}

	if err := uc.accountRepo.UpdateStatus(ctx, id, domain.StatusClosed, time.Now().UTC()); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsClosed.Inc()
	}

	return nil
}
