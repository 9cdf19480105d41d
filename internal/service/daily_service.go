package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/domain/reward"
	"github.com/LasseVKP/LDCBots/internal/platform/logger"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// DailyView is the daily reward overview returned to the presentation layer.
type DailyView struct {
	Day      int64                  `json:"day"`
	Forecast []domain.DailyForecast `json:"forecast"`
	Claimed  bool                   `json:"claimed"`
}

// DailyService provides the rotating daily reward forecast and claim
// processing.
type DailyService interface {
	// View returns the five-day forecast starting at today plus whether the
	// actor has already claimed today. Reading rotates a stale forecast
	// forward first.
	View(ctx context.Context, actorID string) (*DailyView, error)

	// Claim credits today's forecast entry to the actor, stamps the claim
	// day, and contributes the claimed tokens to the weekly pool. Fails with
	// domain.ErrAlreadyClaimed on a repeat claim within the same day.
	Claim(ctx context.Context, actor domain.Actor) (*domain.DailyForecast, error)

	// Refresh rotates the stored forecast up to today. The scheduler calls
	// it periodically so the stored window stays warm even without reads.
	Refresh(ctx context.Context) error
}

// dailyService implements the DailyService interface.
type dailyService struct {
	ledger    store.LedgerStore
	pool      store.PoolStore
	audit     store.TransactionStore
	generator *reward.Generator
	dayIndex  func() int64
	logger    *slog.Logger
}

// NewDailyService creates a new DailyService. If generator is nil a
// default-parameter generator is used. It returns an error if any of the
// required dependencies are nil.
func NewDailyService(
	ledger store.LedgerStore,
	pool store.PoolStore,
	audit store.TransactionStore,
	generator *reward.Generator,
	log *slog.Logger,
) (DailyService, error) {
	if ledger == nil {
		return nil, domain.NewValidationError("ledger", "cannot be nil", nil)
	}
	if pool == nil {
		return nil, domain.NewValidationError("pool", "cannot be nil", nil)
	}
	if audit == nil {
		return nil, domain.NewValidationError("audit", "cannot be nil", nil)
	}
	if generator == nil {
		generator = reward.NewGenerator(nil, nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &dailyService{
		ledger:    ledger,
		pool:      pool,
		audit:     audit,
		generator: generator,
		dayIndex:  reward.CurrentDayIndex,
		logger:    log.With(slog.String("component", "daily_service")),
	}, nil
}

// View implements DailyService.View
func (s *dailyService) View(ctx context.Context, actorID string) (*DailyView, error) {
	today := s.dayIndex()

	forecast, err := s.currentForecast(ctx, today)
	if err != nil {
		return nil, NewServiceError("daily", "view", err)
	}

	claimed := false
	entry, err := s.ledger.GetByActorID(ctx, actorID)
	if err == nil {
		claimed = entry.DailyDay == today
	} else if !errors.Is(err, store.ErrLedgerEntryNotFound) {
		return nil, NewServiceError("daily", "view", err)
	}

	return &DailyView{Day: today, Forecast: forecast, Claimed: claimed}, nil
}

// Claim implements DailyService.Claim
// The credit and the claim stamp are one conditional write, so double claims
// within a day cannot double-pay even under concurrent requests.
func (s *dailyService) Claim(ctx context.Context, actor domain.Actor) (*domain.DailyForecast, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	today := s.dayIndex()

	forecast, err := s.currentForecast(ctx, today)
	if err != nil {
		return nil, NewServiceError("daily", "claim", err)
	}
	todays := forecast[0]

	if _, err := s.ledger.ClaimDaily(ctx, actor, today, todays.Money, todays.Tokens); err != nil {
		if errors.Is(err, domain.ErrAlreadyClaimed) {
			return nil, err
		}
		return nil, NewServiceError("daily", "claim", err)
	}

	// Claimed tokens enter the weekly pool as a purchase-less contribution.
	if _, err := s.pool.AddToPool(ctx, todays.Tokens); err != nil {
		log.Error("failed to add claimed tokens to pool",
			slog.String("actor_id", actor.ID()),
			slog.Int64("tokens", todays.Tokens),
			slog.String("error", err.Error()))
	}

	if err := s.audit.Record(ctx, domain.NewTransaction(actor.ID(), domain.TransactionTypeDaily, todays.Money, todays.Tokens, "")); err != nil {
		log.Warn("failed to record daily claim",
			slog.String("actor_id", actor.ID()),
			slog.String("error", err.Error()))
	}

	log.Info("daily reward claimed",
		slog.String("actor_id", actor.ID()),
		slog.Int64("day", today),
		slog.Int64("money", int64(todays.Money)),
		slog.Int64("tokens", todays.Tokens))
	return &todays, nil
}

// Refresh implements DailyService.Refresh
func (s *dailyService) Refresh(ctx context.Context) error {
	if _, err := s.currentForecast(ctx, s.dayIndex()); err != nil {
		return NewServiceError("daily", "refresh", err)
	}
	return nil
}

// currentForecast loads the stored forecast, rotates it up to today, and
// persists the rotation when anything changed.
func (s *dailyService) currentForecast(ctx context.Context, today int64) ([]domain.DailyForecast, error) {
	state, err := s.pool.Get(ctx)
	if err != nil {
		return nil, err
	}

	forecast, changed := s.generator.Rotate(state.Forecast, today)
	if changed {
		if err := s.pool.SetForecast(ctx, forecast); err != nil {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Debug("forecast rotated",
			slog.Int64("day", today))
	}
	return forecast, nil
}
