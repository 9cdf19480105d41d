package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/platform/logger"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// leaderboardSize is the number of entries returned by the leaderboards.
const leaderboardSize = 10

// EconomyService provides currency transfers, balance reads, and the
// leaderboard.
type EconomyService interface {
	// Pay transfers amount from payer to payee. Returns the payer's and
	// payee's new balances. Fails with domain.ErrInvalidAmount,
	// domain.ErrTargetNotEligible, or domain.ErrInsufficientFunds.
	Pay(ctx context.Context, payer, payee domain.Actor, amount domain.Cents) (payerBalance, payeeBalance domain.Cents, err error)

	// Balance returns the actor's balance; actors without a ledger entry
	// read as zero.
	Balance(ctx context.Context, actorID string) (domain.Cents, error)

	// Leaderboard returns the top entries ordered by descending balance.
	Leaderboard(ctx context.Context) ([]domain.LedgerEntry, error)

	// History returns the actor's most recent audit records, newest first.
	History(ctx context.Context, actorID string, limit int) ([]domain.Transaction, error)

	// Greet credits the configured greeting reward to the actor and returns
	// the new balance.
	Greet(ctx context.Context, actor domain.Actor) (domain.Cents, error)
}

// EconomyConfig holds the economy service's tunables.
type EconomyConfig struct {
	// GreetingReward is the amount credited by Greet.
	GreetingReward domain.Cents
}

// economyService implements the EconomyService interface.
type economyService struct {
	ledger store.LedgerStore
	audit  store.TransactionStore
	cfg    EconomyConfig
	logger *slog.Logger
}

// NewEconomyService creates a new EconomyService. It returns an error if any
// of the required dependencies are nil.
func NewEconomyService(
	ledger store.LedgerStore,
	audit store.TransactionStore,
	cfg EconomyConfig,
	log *slog.Logger,
) (EconomyService, error) {
	if ledger == nil {
		return nil, domain.NewValidationError("ledger", "cannot be nil", nil)
	}
	if audit == nil {
		return nil, domain.NewValidationError("audit", "cannot be nil", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &economyService{
		ledger: ledger,
		audit:  audit,
		cfg:    cfg,
		logger: log.With(slog.String("component", "economy_service")),
	}, nil
}

// Pay implements EconomyService.Pay
// The debit is a conditional write, so two concurrent transfers from the same
// payer cannot overdraw: the second one's guard fails at the database.
func (s *economyService) Pay(ctx context.Context, payer, payee domain.Actor, amount domain.Cents) (domain.Cents, domain.Cents, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if amount <= 0 {
		return 0, 0, domain.ErrInvalidAmount
	}
	if payee.Bot() || payee.ID() == payer.ID() {
		return 0, 0, domain.ErrTargetNotEligible
	}

	payerBalance, err := s.ledger.DebitBalance(ctx, payer, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return 0, 0, err
		}
		return 0, 0, NewServiceError("economy", "pay", err)
	}

	payeeBalance, err := s.ledger.AddBalance(ctx, payee, amount)
	if err != nil {
		// The debit already landed. Surface the failure loudly; the audit
		// trail below never runs, so the transfer needs operator attention.
		log.Error("credit failed after successful debit",
			slog.String("payer_id", payer.ID()),
			slog.String("payee_id", payee.ID()),
			slog.Int64("amount", int64(amount)),
			slog.String("error", err.Error()))
		return 0, 0, NewServiceError("economy", "pay", err)
	}

	ref := uuid.NewString()
	s.record(ctx, domain.NewTransaction(payer.ID(), domain.TransactionTypePayOut, -amount, 0, ref))
	s.record(ctx, domain.NewTransaction(payee.ID(), domain.TransactionTypePayIn, amount, 0, ref))

	log.Info("payment completed",
		slog.String("payer_id", payer.ID()),
		slog.String("payee_id", payee.ID()),
		slog.Int64("amount", int64(amount)))
	return payerBalance, payeeBalance, nil
}

// Balance implements EconomyService.Balance
func (s *economyService) Balance(ctx context.Context, actorID string) (domain.Cents, error) {
	entry, err := s.ledger.GetByActorID(ctx, actorID)
	if err != nil {
		if errors.Is(err, store.ErrLedgerEntryNotFound) {
			return 0, nil
		}
		return 0, NewServiceError("economy", "balance", err)
	}
	return entry.Balance, nil
}

// Leaderboard implements EconomyService.Leaderboard
func (s *economyService) Leaderboard(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := s.ledger.TopByBalance(ctx, leaderboardSize)
	if err != nil {
		return nil, NewServiceError("economy", "leaderboard", err)
	}
	return entries, nil
}

// History implements EconomyService.History
func (s *economyService) History(ctx context.Context, actorID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	records, err := s.audit.ListByActor(ctx, actorID, limit)
	if err != nil {
		return nil, NewServiceError("economy", "history", err)
	}
	return records, nil
}

// Greet implements EconomyService.Greet
func (s *economyService) Greet(ctx context.Context, actor domain.Actor) (domain.Cents, error) {
	balance, err := s.ledger.AddBalance(ctx, actor, s.cfg.GreetingReward)
	if err != nil {
		return 0, NewServiceError("economy", "greet", err)
	}
	s.record(ctx, domain.NewTransaction(actor.ID(), domain.TransactionTypeGreeting, s.cfg.GreetingReward, 0, ""))
	return balance, nil
}

// record appends an audit row. Audit failures are logged but never fail the
// mutation they describe.
func (s *economyService) record(ctx context.Context, tx *domain.Transaction) {
	if err := s.audit.Record(ctx, tx); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to record transaction",
			slog.String("actor_id", tx.ActorID),
			slog.String("type", string(tx.Type)),
			slog.String("error", err.Error()))
	}
}
