package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/platform/logger"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// PostgresPoolStore implements the store.PoolStore interface using a
// PostgreSQL database as the storage backend. The pool/forecast singleton is
// a single row in its own table (id fixed at 1); the mutating methods upsert
// so the record is created lazily on first use.
type PostgresPoolStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPoolStore creates a new PostgreSQL implementation of the
// PoolStore interface. If logger is nil, a default logger will be used.
func NewPostgresPoolStore(db store.DBTX, logger *slog.Logger) *PostgresPoolStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPoolStore{
		db:     db,
		logger: logger.With(slog.String("component", "pool_store")),
	}
}

// Ensure PostgresPoolStore implements store.PoolStore interface
var _ store.PoolStore = (*PostgresPoolStore)(nil)

// WithTx implements store.PoolStore.WithTx
func (s *PostgresPoolStore) WithTx(tx *sql.Tx) store.PoolStore {
	return &PostgresPoolStore{db: tx, logger: s.logger}
}

// Get implements store.PoolStore.Get
// A missing row reads as a zero state so callers never special-case the
// pre-creation window.
func (s *PostgresPoolStore) Get(ctx context.Context) (*domain.PoolState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT pool, forecast FROM pool_state WHERE id = 1`

	var pool int64
	var forecastJSON []byte
	err := s.db.QueryRowContext(ctx, query).Scan(&pool, &forecastJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.PoolState{}, nil
		}
		log.Error("failed to get pool state", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	state := &domain.PoolState{Pool: pool}
	if len(forecastJSON) > 0 {
		if err := json.Unmarshal(forecastJSON, &state.Forecast); err != nil {
			log.Error("failed to decode stored forecast", slog.String("error", err.Error()))
			return nil, err
		}
	}
	return state, nil
}

// AddToPool implements store.PoolStore.AddToPool
func (s *PostgresPoolStore) AddToPool(ctx context.Context, delta int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO pool_state (id, pool)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE
		SET pool = pool_state.pool + EXCLUDED.pool,
		    updated_at = now()
		RETURNING pool
	`

	var pool int64
	if err := s.db.QueryRowContext(ctx, query, delta).Scan(&pool); err != nil {
		log.Error("failed to add to pool",
			slog.String("error", err.Error()),
			slog.Int64("delta", delta))
		return 0, MapError(err)
	}

	log.Debug("pool updated", slog.Int64("delta", delta), slog.Int64("pool", pool))
	return pool, nil
}

// SetForecast implements store.PoolStore.SetForecast
func (s *PostgresPoolStore) SetForecast(ctx context.Context, forecast []domain.DailyForecast) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	encoded, err := json.Marshal(forecast)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO pool_state (id, forecast)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE
		SET forecast = EXCLUDED.forecast,
		    updated_at = now()
	`

	if _, err := s.db.ExecContext(ctx, query, encoded); err != nil {
		log.Error("failed to store forecast", slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// DrainPool implements store.PoolStore.DrainPool
// The CTE locks the row, so the swap to zero and the read of the prior value
// are one atomic step. An already-empty (or absent) pool drains to zero,
// which is the distributor's double-fire guard.
func (s *PostgresPoolStore) DrainPool(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		WITH old AS (
			SELECT pool FROM pool_state WHERE id = 1 FOR UPDATE
		)
		UPDATE pool_state
		SET pool = 0, updated_at = now()
		FROM old
		WHERE pool_state.id = 1 AND old.pool <> 0
		RETURNING old.pool
	`

	var pool int64
	err := s.db.QueryRowContext(ctx, query).Scan(&pool)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		log.Error("failed to drain pool", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	log.Info("pool drained", slog.Int64("pool", pool))
	return pool, nil
}
