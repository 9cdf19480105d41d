package store

import (
	"context"
	"database/sql"

	"github.com/LasseVKP/LDCBots/internal/domain"
)

// TransactionStore persists the audit log of balance and token mutations.
// Records are append-only; a failed audit write never rolls back the mutation
// it describes unless both run inside the same database transaction.
type TransactionStore interface {
	// Record appends an audit record.
	Record(ctx context.Context, tx *domain.Transaction) error

	// ListByActor returns up to limit of the actor's most recent records,
	// newest first.
	ListByActor(ctx context.Context, actorID string, limit int) ([]domain.Transaction, error)

	// WithTx returns a TransactionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TransactionStore
}
