package store

import (
	"context"
	"database/sql"

	"github.com/LasseVKP/LDCBots/internal/domain"
)

// PoolStore persists the singleton pool/forecast record. The record lives in
// its own table rather than as a sentinel row in the ledger, and is created
// lazily on first use: Get on an empty table returns a zero PoolState without
// error, and the mutating methods upsert.
type PoolStore interface {
	// Get retrieves the pool state, returning a zero state if the record has
	// not been created yet.
	Get(ctx context.Context) (*domain.PoolState, error)

	// AddToPool atomically increments the pool by delta tokens, creating the
	// record if absent, and returns the new pool size.
	AddToPool(ctx context.Context, delta int64) (int64, error)

	// SetForecast replaces the stored forecast window.
	SetForecast(ctx context.Context, forecast []domain.DailyForecast) error

	// DrainPool atomically swaps the pool to zero and returns the prior
	// value. A second drain before any deposits returns zero, which is what
	// makes the weekly distribution safe against double-fire.
	DrainPool(ctx context.Context) (int64, error)

	// WithTx returns a PoolStore bound to the provided transaction.
	WithTx(tx *sql.Tx) PoolStore
}
