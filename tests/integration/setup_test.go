package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	adaptershttp "github.com/solobooks/ledger/internal/adapter/http"
	"github.com/solobooks/ledger/internal/adapter/http/handler"
	"github.com/solobooks/ledger/internal/adapter/repository/postgres"
	redisrepo "github.com/solobooks/ledger/internal/adapter/repository/redis"
	"github.com/solobooks/ledger/internal/fx"
	infraredis "github.com/solobooks/ledger/internal/infrastructure/redis"
	"github.com/solobooks/ledger/internal/usecase"
	"github.com/solobooks/ledger/tests/testutil"
)

// identityRates satisfies usecase.RateSource without network access.
type identityRates struct{}

func (identityRates) Rates(ctx context.Context, base string) fx.RateTable {
	return fx.RateTable{Base: base, Rates: map[string]decimal.Decimal{}, FetchedAt: time.Now()}
}

// newTestRouter wires the full HTTP stack against the test database,
// with miniredis standing in for the idempotency store.
func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient, err := infraredis.NewClient(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	logger := zerolog.Nop()

	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(logger)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, historyRepo, idGen, nil)
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, historyRepo, idGen, retrier, nil)
	expenseUC := usecase.NewExpenseUseCase(postingUC, logger, nil)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, historyRepo, idGen, retrier, nil)
	reportUC := usecase.NewReportUseCase(accountRepo, historyRepo, identityRates{})

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC, postingUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		HistoryHandler:   handler.NewHistoryHandler(reportUC),
		ExpenseHandler:   handler.NewExpenseHandler(expenseUC),
		ReportHandler:    handler.NewReportHandler(reportUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
	})
}
