package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/LasseVKP/LDCBots/internal/config"
	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/domain/reward"
	"github.com/LasseVKP/LDCBots/internal/platform/postgres"
	"github.com/LasseVKP/LDCBots/internal/scheduler"
	"github.com/LasseVKP/LDCBots/internal/service"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	ledgerStore      store.LedgerStore
	poolStore        store.PoolStore
	transactionStore store.TransactionStore

	// Service interfaces
	economyService     service.EconomyService
	tokenService       service.TokenService
	dailyService       service.DailyService
	blackjackService   service.BlackjackService
	distributorService service.DistributorService

	// Scheduled jobs
	scheduler *scheduler.Scheduler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.ledgerStore = postgres.NewPostgresLedgerStore(db, logger)
	app.poolStore = postgres.NewPostgresPoolStore(db, logger)
	app.transactionStore = postgres.NewPostgresTransactionStore(db, logger)

	var err error

	app.economyService, err = service.NewEconomyService(
		app.ledgerStore,
		app.transactionStore,
		service.EconomyConfig{
			GreetingReward: domain.Cents(cfg.Economy.GreetingRewardCents),
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create economy service: %w", err)
	}

	app.tokenService, err = service.NewTokenService(
		app.ledgerStore,
		app.poolStore,
		app.transactionStore,
		service.TokenConfig{
			Price:     domain.Cents(cfg.Token.PriceCents),
			WeeklyCap: cfg.Token.WeeklyCap,
			Value:     domain.Cents(cfg.Token.ValueCents),
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	generator := reward.NewGenerator(&reward.Params{
		MinMoney:  domain.Cents(cfg.Daily.MinMoneyCents),
		MaxMoney:  domain.Cents(cfg.Daily.MaxMoneyCents),
		MoneyStep: domain.Cents(cfg.Daily.MoneyStepCents),
		MinTokens: cfg.Daily.MinTokens,
		MaxTokens: cfg.Daily.MaxTokens,
		TokenStep: cfg.Daily.TokenStep,
	}, nil)

	app.dailyService, err = service.NewDailyService(
		app.ledgerStore,
		app.poolStore,
		app.transactionStore,
		generator,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily service: %w", err)
	}

	app.blackjackService, err = service.NewBlackjackService(
		app.ledgerStore,
		app.transactionStore,
		time.Duration(cfg.Blackjack.SessionTimeoutSeconds)*time.Second,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create blackjack service: %w", err)
	}

	app.distributorService, err = service.NewDistributorService(
		store.SQLTxRunner{DB: db},
		app.ledgerStore,
		app.poolStore,
		app.transactionStore,
		domain.Cents(cfg.Token.ValueCents),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create distributor service: %w", err)
	}

	app.scheduler, err = scheduler.New(app.distributorService, app.dailyService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := app.scheduler.RegisterAll(cfg.Schedule.WeeklyCron, cfg.Schedule.ForecastCron); err != nil {
		return nil, fmt.Errorf("failed to register scheduled jobs: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the scheduler and the HTTP server, handling lifecycle and
// cleanup. It returns an error if the server fails to start or encounters
// problems.
func (app *application) Run(ctx context.Context) error {
	app.scheduler.Start()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	// Force-resolve open blackjack sessions so no wager stays stranded.
	if app.blackjackService != nil {
		app.blackjackService.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
