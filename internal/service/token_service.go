package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/platform/logger"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// TokenService provides token purchases, token balances, and the token
// leaderboard and pool views.
type TokenService interface {
	// Buy purchases count tokens at the configured price, bounded by the
	// weekly cap, and adds them to the weekly pool. Returns the updated
	// ledger entry. Fails with domain.ErrInvalidAmount,
	// domain.ErrInsufficientFunds, or domain.ErrWeeklyCapExceeded.
	Buy(ctx context.Context, actor domain.Actor, count int64) (*domain.LedgerEntry, error)

	// Balance returns the actor's token count; actors without a ledger
	// entry read as zero.
	Balance(ctx context.Context, actorID string) (int64, error)

	// Leaderboard returns the top token holders in descending order.
	Leaderboard(ctx context.Context) ([]domain.LedgerEntry, error)

	// Pool returns the number of tokens awaiting the next distribution.
	Pool(ctx context.Context) (int64, error)
}

// TokenConfig holds the token economy's tunables.
type TokenConfig struct {
	// Price is the currency cost of one token.
	Price domain.Cents

	// WeeklyCap bounds how many tokens one actor may purchase per week.
	WeeklyCap int64

	// Value is the currency paid per pool token during the weekly
	// distribution.
	Value domain.Cents
}

// tokenService implements the TokenService interface.
type tokenService struct {
	ledger store.LedgerStore
	pool   store.PoolStore
	audit  store.TransactionStore
	cfg    TokenConfig
	logger *slog.Logger
}

// NewTokenService creates a new TokenService. It returns an error if any of
// the required dependencies are nil or the config is unusable.
func NewTokenService(
	ledger store.LedgerStore,
	pool store.PoolStore,
	audit store.TransactionStore,
	cfg TokenConfig,
	log *slog.Logger,
) (TokenService, error) {
	if ledger == nil {
		return nil, domain.NewValidationError("ledger", "cannot be nil", nil)
	}
	if pool == nil {
		return nil, domain.NewValidationError("pool", "cannot be nil", nil)
	}
	if audit == nil {
		return nil, domain.NewValidationError("audit", "cannot be nil", nil)
	}
	if cfg.Price <= 0 {
		return nil, domain.NewValidationError("cfg.Price", "must be positive", nil)
	}
	if cfg.WeeklyCap <= 0 {
		return nil, domain.NewValidationError("cfg.WeeklyCap", "must be positive", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &tokenService{
		ledger: ledger,
		pool:   pool,
		audit:  audit,
		cfg:    cfg,
		logger: log.With(slog.String("component", "token_service")),
	}, nil
}

// Buy implements TokenService.Buy
// The purchase is one conditional write in the ledger (funds and cap guards
// included); only after it lands are the tokens added to the weekly pool.
func (s *tokenService) Buy(ctx context.Context, actor domain.Actor, count int64) (*domain.LedgerEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if count <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	entry, err := s.ledger.PurchaseTokens(ctx, actor, count, s.cfg.Price, s.cfg.WeeklyCap)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrWeeklyCapExceeded) {
			return nil, err
		}
		return nil, NewServiceError("token", "buy", err)
	}

	if _, err := s.pool.AddToPool(ctx, count); err != nil {
		// The purchase landed but the pool missed its share. Flag it for
		// reconciliation instead of unwinding the actor's tokens.
		log.Error("failed to add purchased tokens to pool",
			slog.String("actor_id", actor.ID()),
			slog.Int64("count", count),
			slog.String("error", err.Error()))
	}

	cost := s.cfg.Price * domain.Cents(count)
	if err := s.audit.Record(ctx, domain.NewTransaction(actor.ID(), domain.TransactionTypeTokenBuy, -cost, count, "")); err != nil {
		log.Warn("failed to record token purchase",
			slog.String("actor_id", actor.ID()),
			slog.String("error", err.Error()))
	}

	log.Info("tokens purchased",
		slog.String("actor_id", actor.ID()),
		slog.Int64("count", count),
		slog.Int64("tokens", entry.Tokens))
	return entry, nil
}

// Balance implements TokenService.Balance
func (s *tokenService) Balance(ctx context.Context, actorID string) (int64, error) {
	entry, err := s.ledger.GetByActorID(ctx, actorID)
	if err != nil {
		if errors.Is(err, store.ErrLedgerEntryNotFound) {
			return 0, nil
		}
		return 0, NewServiceError("token", "balance", err)
	}
	return entry.Tokens, nil
}

// Leaderboard implements TokenService.Leaderboard
func (s *tokenService) Leaderboard(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := s.ledger.TopByTokens(ctx, leaderboardSize)
	if err != nil {
		return nil, NewServiceError("token", "leaderboard", err)
	}
	return entries, nil
}

// Pool implements TokenService.Pool
func (s *tokenService) Pool(ctx context.Context) (int64, error) {
	state, err := s.pool.Get(ctx)
	if err != nil {
		return 0, NewServiceError("token", "pool", err)
	}
	return state.Pool, nil
}
