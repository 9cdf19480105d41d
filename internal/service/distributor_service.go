package service

import (
	"context"
	"database/sql"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/platform/logger"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// maxWinners is how many top token holders share the weekly pool.
const maxWinners = 3

// Winner is one payout line of a weekly distribution.
type Winner struct {
	ActorID string       `json:"actor_id"`
	Name    string       `json:"name"`
	Rank    int          `json:"rank"`
	Tokens  int64        `json:"tokens"`
	Reward  domain.Cents `json:"reward"`
}

// DistributionResult reports one weekly distribution run to the presentation
// layer.
type DistributionResult struct {
	Winners      []Winner `json:"winners"`
	PoolConsumed int64    `json:"pool_consumed"`
}

// DistributorService runs the weekly token pool distribution.
type DistributorService interface {
	// Distribute drains the pool, pays the top token holders their weighted
	// share, and resets every actor's token counters. Safe to invoke
	// redundantly: a drained (or never-filled) pool distributes nothing.
	Distribute(ctx context.Context) (*DistributionResult, error)
}

// distributorService implements the DistributorService interface.
type distributorService struct {
	runner     store.TxRunner
	ledger     store.LedgerStore
	pool       store.PoolStore
	audit      store.TransactionStore
	tokenValue domain.Cents
	logger     *slog.Logger
}

// NewDistributorService creates a new DistributorService. It returns an
// error if any of the required dependencies are nil.
func NewDistributorService(
	runner store.TxRunner,
	ledger store.LedgerStore,
	pool store.PoolStore,
	audit store.TransactionStore,
	tokenValue domain.Cents,
	log *slog.Logger,
) (DistributorService, error) {
	if runner == nil {
		return nil, domain.NewValidationError("runner", "cannot be nil", nil)
	}
	if ledger == nil {
		return nil, domain.NewValidationError("ledger", "cannot be nil", nil)
	}
	if pool == nil {
		return nil, domain.NewValidationError("pool", "cannot be nil", nil)
	}
	if audit == nil {
		return nil, domain.NewValidationError("audit", "cannot be nil", nil)
	}
	if tokenValue <= 0 {
		return nil, domain.NewValidationError("tokenValue", "must be positive", nil)
	}
	if log == nil {
		log = slog.Default()
	}

	return &distributorService{
		runner:     runner,
		ledger:     ledger,
		pool:       pool,
		audit:      audit,
		tokenValue: tokenValue,
		logger:     log.With(slog.String("component", "distributor_service")),
	}, nil
}

// Distribute implements DistributorService.Distribute
// Everything runs in one database transaction: the drain locks the pool row,
// so a concurrent or repeated fire observes pool=0 and pays nothing.
func (s *distributorService) Distribute(ctx context.Context) (*DistributionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := &DistributionResult{Winners: []Winner{}}

	err := s.runner.RunTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		ledger := s.ledger.WithTx(tx)
		pool := s.pool.WithTx(tx)
		audit := s.audit.WithTx(tx)

		drained, err := pool.DrainPool(ctx)
		if err != nil {
			return err
		}

		if drained == 0 {
			// Already distributed (or never filled). Double-fire guard: pay
			// nothing and leave token counters alone.
			return nil
		}
		result.PoolConsumed = drained

		top, err := ledger.TopByTokens(ctx, maxWinners)
		if err != nil {
			return err
		}

		ref := uuid.NewString()
		for i, entry := range top {
			reward := winnerReward(i, len(top), drained, s.tokenValue)
			if err := ledger.CreditBalanceByID(ctx, entry.ActorID, reward); err != nil {
				return err
			}
			if err := audit.Record(ctx, domain.NewTransaction(entry.ActorID, domain.TransactionTypeDistribution, reward, 0, ref)); err != nil {
				return err
			}
			result.Winners = append(result.Winners, Winner{
				ActorID: entry.ActorID,
				Name:    entry.DisplayName,
				Rank:    i,
				Tokens:  entry.Tokens,
				Reward:  reward,
			})
		}

		return ledger.ResetAllTokens(ctx)
	})
	if err != nil {
		return nil, NewServiceError("distributor", "distribute", err)
	}

	log.Info("weekly distribution completed",
		slog.Int("winners", len(result.Winners)),
		slog.Int64("pool_consumed", result.PoolConsumed))
	return result, nil
}

// winnerReward computes the payout for the winner at rank i among w winners
// sharing pool tokens. The weighting is linearly descending (w-i parts out of
// w*(w+1)/2); the rounded token share converts to currency at tokenValue.
// Rounding can leave a residual fraction of the pool unallocated; that loss
// is deliberate and matches the historical behavior.
func winnerReward(i, w int, pool int64, tokenValue domain.Cents) domain.Cents {
	weight := float64(w-i) / float64(w*(w+1)/2)
	share := math.Round(weight * float64(pool))
	return domain.Cents(int64(share) * int64(tokenValue))
}
