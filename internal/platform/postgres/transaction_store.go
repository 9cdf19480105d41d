package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/platform/logger"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// PostgresTransactionStore implements the store.TransactionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTransactionStore creates a new PostgreSQL implementation of the
// TransactionStore interface. If logger is nil, a default logger will be
// used.
func NewPostgresTransactionStore(db store.DBTX, logger *slog.Logger) *PostgresTransactionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTransactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "transaction_store")),
	}
}

// Ensure PostgresTransactionStore implements store.TransactionStore interface
var _ store.TransactionStore = (*PostgresTransactionStore)(nil)

// WithTx implements store.TransactionStore.WithTx
func (s *PostgresTransactionStore) WithTx(tx *sql.Tx) store.TransactionStore {
	return &PostgresTransactionStore{db: tx, logger: s.logger}
}

// Record implements store.TransactionStore.Record
func (s *PostgresTransactionStore) Record(ctx context.Context, tx *domain.Transaction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO transactions (id, actor_id, type, amount, token_amount, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		tx.ID,
		tx.ActorID,
		string(tx.Type),
		int64(tx.Amount),
		tx.TokenAmount,
		tx.ReferenceID,
		tx.CreatedAt,
	)
	if err != nil {
		log.Error("failed to record transaction",
			slog.String("error", err.Error()),
			slog.String("actor_id", tx.ActorID),
			slog.String("type", string(tx.Type)))
		return MapError(err)
	}
	return nil
}

// ListByActor implements store.TransactionStore.ListByActor
func (s *PostgresTransactionStore) ListByActor(ctx context.Context, actorID string, limit int) ([]domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, actor_id, type, amount, token_amount, reference_id, created_at
		FROM transactions
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, actorID, limit)
	if err != nil {
		log.Error("failed to list transactions",
			slog.String("error", err.Error()),
			slog.String("actor_id", actorID))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var records []domain.Transaction
	for rows.Next() {
		var record domain.Transaction
		var txType string
		var amount int64
		if err := rows.Scan(
			&record.ID,
			&record.ActorID,
			&txType,
			&amount,
			&record.TokenAmount,
			&record.ReferenceID,
			&record.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		record.Type = domain.TransactionType(txType)
		record.Amount = domain.Cents(amount)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return records, nil
}
