// Package scheduler runs the recurring economy jobs: the weekly token pool
// distribution and the periodic daily forecast refresh.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/service"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron        *cron.Cron
	distributor service.DistributorService
	daily       service.DailyService
	logger      *slog.Logger
}

// New creates a Scheduler wired to the given services. It returns an error
// if any of the required dependencies are nil.
func New(distributor service.DistributorService, daily service.DailyService, log *slog.Logger) (*Scheduler, error) {
	if distributor == nil {
		return nil, domain.NewValidationError("distributor", "cannot be nil", nil)
	}
	if daily == nil {
		return nil, domain.NewValidationError("daily", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Scheduler{
		cron:        cron.New(),
		distributor: distributor,
		daily:       daily,
		logger:      log.With("component", "scheduler"),
	}, nil
}

// RegisterAll registers the weekly distribution and forecast refresh jobs
// using standard five-field cron expressions.
func (s *Scheduler) RegisterAll(weeklyCron, forecastCron string) error {
	if _, err := s.cron.AddFunc(weeklyCron, s.weeklyDistribution); err != nil {
		return fmt.Errorf("register weekly distribution: %w", err)
	}
	if _, err := s.cron.AddFunc(forecastCron, s.forecastRefresh); err != nil {
		return fmt.Errorf("register forecast refresh: %w", err)
	}
	return nil
}

// Start starts the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron runner and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunWeeklyNow executes the weekly distribution immediately, outside the
// cron cadence. Used by the manual trigger endpoint.
func (s *Scheduler) RunWeeklyNow(ctx context.Context) (*service.DistributionResult, error) {
	return s.distributor.Distribute(ctx)
}

func (s *Scheduler) weeklyDistribution() {
	ctx := context.Background()
	result, err := s.distributor.Distribute(ctx)
	if err != nil {
		s.logger.Error("weekly distribution failed", "error", err)
		return
	}
	s.logger.Info("weekly distribution complete",
		"pool_consumed", result.PoolConsumed,
		"winners", len(result.Winners))
}

func (s *Scheduler) forecastRefresh() {
	ctx := context.Background()
	if err := s.daily.Refresh(ctx); err != nil {
		s.logger.Error("forecast refresh failed", "error", err)
		return
	}
	s.logger.Debug("forecast refreshed")
}
