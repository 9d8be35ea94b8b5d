package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/solobooks/ledger/internal/adapter/http"
	"github.com/solobooks/ledger/internal/adapter/http/handler"
	postgresRepo "github.com/solobooks/ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/solobooks/ledger/internal/adapter/repository/redis"
	"github.com/solobooks/ledger/internal/fx"
	"github.com/solobooks/ledger/internal/infrastructure/config"
	"github.com/solobooks/ledger/internal/infrastructure/logger"
	"github.com/solobooks/ledger/internal/infrastructure/metrics"
	"github.com/solobooks/ledger/internal/infrastructure/postgres"
	"github.com/solobooks/ledger/internal/infrastructure/redis"
	"github.com/solobooks/ledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Run migrations
	if err := postgres.RunMigrations(appLogger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Register Prometheus metrics
	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	historyRepo := postgresRepo.NewHistoryRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Exchange rate cache
	rateProvider := fx.NewHTTPProvider(cfg.FXAPIURL, cfg.FXTimeout)
	rateCache := fx.NewCache(rateProvider, appLogger, fx.WithTTL(cfg.FXTTL))

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, historyRepo, idGen, m)
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, historyRepo, idGen, retrier, m)
	expenseUC := usecase.NewExpenseUseCase(postingUC, appLogger, m)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, historyRepo, idGen, retrier, m)
	reportUC := usecase.NewReportUseCase(accountRepo, historyRepo, rateCache)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC, postingUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		HistoryHandler:   handler.NewHistoryHandler(reportUC),
		ExpenseHandler:   handler.NewExpenseHandler(expenseUC),
		ReportHandler:    handler.NewReportHandler(reportUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
