package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/platform/logger"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// ledgerColumns is the canonical column list scanned into a domain.LedgerEntry.
const ledgerColumns = "actor_id, balance, tokens, tokens_bought, display_name, daily_day, created_at, updated_at"

// PostgresLedgerStore implements the store.LedgerStore interface using a
// PostgreSQL database as the storage backend. Every mutation is a single
// statement: upserts for the unconditional increments and guarded UPDATEs for
// the conditional ones, so concurrent operations on the same actor never lose
// updates and no check-then-debit window exists.
type PostgresLedgerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLedgerStore creates a new PostgreSQL implementation of the
// LedgerStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresLedgerStore(db store.DBTX, logger *slog.Logger) *PostgresLedgerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLedgerStore{
		db:     db,
		logger: logger.With(slog.String("component", "ledger_store")),
	}
}

// Ensure PostgresLedgerStore implements store.LedgerStore interface
var _ store.LedgerStore = (*PostgresLedgerStore)(nil)

// WithTx implements store.LedgerStore.WithTx
func (s *PostgresLedgerStore) WithTx(tx *sql.Tx) store.LedgerStore {
	return &PostgresLedgerStore{db: tx, logger: s.logger}
}

// GetByActorID implements store.LedgerStore.GetByActorID
func (s *PostgresLedgerStore) GetByActorID(ctx context.Context, actorID string) (*domain.LedgerEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + ledgerColumns + ` FROM ledger WHERE actor_id = $1`

	entry, err := scanLedgerEntry(s.db.QueryRowContext(ctx, query, actorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLedgerEntryNotFound
		}
		log.Error("failed to get ledger entry",
			slog.String("error", err.Error()),
			slog.String("actor_id", actorID))
		return nil, MapError(err)
	}
	return entry, nil
}

// AddBalance implements store.LedgerStore.AddBalance
// The upsert creates the entry on first mutation and refreshes the cached
// display name either way.
func (s *PostgresLedgerStore) AddBalance(ctx context.Context, actor domain.Actor, delta domain.Cents) (domain.Cents, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO ledger (actor_id, balance, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (actor_id) DO UPDATE
		SET balance = ledger.balance + EXCLUDED.balance,
		    display_name = EXCLUDED.display_name,
		    updated_at = now()
		RETURNING balance
	`

	var balance int64
	err := s.db.QueryRowContext(ctx, query, actor.ID(), int64(delta), actor.DisplayName()).Scan(&balance)
	if err != nil {
		log.Error("failed to add balance",
			slog.String("error", err.Error()),
			slog.String("actor_id", actor.ID()),
			slog.Int64("delta", int64(delta)))
		return 0, MapError(err)
	}

	log.Debug("balance updated",
		slog.String("actor_id", actor.ID()),
		slog.Int64("delta", int64(delta)),
		slog.Int64("balance", balance))
	return domain.Cents(balance), nil
}

// AddTokens implements store.LedgerStore.AddTokens
// Purchases additionally bump the weekly tokens_bought counter inside the
// same statement.
func (s *PostgresLedgerStore) AddTokens(ctx context.Context, actor domain.Actor, delta int64, purchase bool) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var boughtDelta int64
	if purchase {
		boughtDelta = delta
	}

	query := `
		INSERT INTO ledger (actor_id, tokens, tokens_bought, display_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (actor_id) DO UPDATE
		SET tokens = ledger.tokens + EXCLUDED.tokens,
		    tokens_bought = ledger.tokens_bought + EXCLUDED.tokens_bought,
		    display_name = EXCLUDED.display_name,
		    updated_at = now()
		RETURNING tokens
	`

	var tokens int64
	err := s.db.QueryRowContext(ctx, query, actor.ID(), delta, boughtDelta, actor.DisplayName()).Scan(&tokens)
	if err != nil {
		log.Error("failed to add tokens",
			slog.String("error", err.Error()),
			slog.String("actor_id", actor.ID()),
			slog.Int64("delta", delta),
			slog.Bool("purchase", purchase))
		return 0, MapError(err)
	}

	log.Debug("tokens updated",
		slog.String("actor_id", actor.ID()),
		slog.Int64("delta", delta),
		slog.Int64("tokens", tokens))
	return tokens, nil
}

// DebitBalance implements store.LedgerStore.DebitBalance
// The sufficient-funds guard is part of the UPDATE's WHERE clause, so a
// failed guard simply matches no row.
func (s *PostgresLedgerStore) DebitBalance(ctx context.Context, actor domain.Actor, amount domain.Cents) (domain.Cents, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE ledger
		SET balance = balance - $2,
		    display_name = $3,
		    updated_at = now()
		WHERE actor_id = $1 AND balance >= $2
		RETURNING balance
	`

	var balance int64
	err := s.db.QueryRowContext(ctx, query, actor.ID(), int64(amount), actor.DisplayName()).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrInsufficientFunds
		}
		log.Error("failed to debit balance",
			slog.String("error", err.Error()),
			slog.String("actor_id", actor.ID()),
			slog.Int64("amount", int64(amount)))
		return 0, MapError(err)
	}
	return domain.Cents(balance), nil
}

// DebitTokens implements store.LedgerStore.DebitTokens
func (s *PostgresLedgerStore) DebitTokens(ctx context.Context, actor domain.Actor, amount int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE ledger
		SET tokens = tokens - $2,
		    display_name = $3,
		    updated_at = now()
		WHERE actor_id = $1 AND tokens >= $2
		RETURNING tokens
	`

	var tokens int64
	err := s.db.QueryRowContext(ctx, query, actor.ID(), amount, actor.DisplayName()).Scan(&tokens)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrInsufficientFunds
		}
		log.Error("failed to debit tokens",
			slog.String("error", err.Error()),
			slog.String("actor_id", actor.ID()),
			slog.Int64("amount", amount))
		return 0, MapError(err)
	}
	return tokens, nil
}

// PurchaseTokens implements store.LedgerStore.PurchaseTokens
// Balance debit, token credit, and the weekly cap check all ride one guarded
// UPDATE. When the statement matches no row, a follow-up read decides which
// guard broke so the caller can report the right error.
func (s *PostgresLedgerStore) PurchaseTokens(ctx context.Context, actor domain.Actor, count int64, price domain.Cents, weeklyCap int64) (*domain.LedgerEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cost := int64(price) * count

	query := `
		UPDATE ledger
		SET balance = balance - $2,
		    tokens = tokens + $3,
		    tokens_bought = tokens_bought + $3,
		    display_name = $4,
		    updated_at = now()
		WHERE actor_id = $1 AND balance >= $2 AND tokens_bought + $3 <= $5
		RETURNING ` + ledgerColumns

	entry, err := scanLedgerEntry(s.db.QueryRowContext(ctx, query, actor.ID(), cost, count, actor.DisplayName(), weeklyCap))
	if err == nil {
		log.Info("tokens purchased",
			slog.String("actor_id", actor.ID()),
			slog.Int64("count", count),
			slog.Int64("cost", cost))
		return entry, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to purchase tokens",
			slog.String("error", err.Error()),
			slog.String("actor_id", actor.ID()),
			slog.Int64("count", count))
		return nil, MapError(err)
	}

	// No row matched. Read the entry to tell a cap violation apart from an
	// empty wallet; a missing entry has no funds at all.
	current, getErr := s.GetByActorID(ctx, actor.ID())
	if getErr != nil {
		if errors.Is(getErr, store.ErrLedgerEntryNotFound) {
			return nil, domain.ErrInsufficientFunds
		}
		return nil, getErr
	}
	if current.TokensBought+count > weeklyCap {
		return nil, domain.ErrWeeklyCapExceeded
	}
	return nil, domain.ErrInsufficientFunds
}

// ClaimDaily implements store.LedgerStore.ClaimDaily
// The upsert lets a brand-new actor claim on first contact; the daily_day
// guard makes the claim idempotent per day.
func (s *PostgresLedgerStore) ClaimDaily(ctx context.Context, actor domain.Actor, day int64, money domain.Cents, tokens int64) (*domain.LedgerEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO ledger (actor_id, balance, tokens, display_name, daily_day)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (actor_id) DO UPDATE
		SET balance = ledger.balance + EXCLUDED.balance,
		    tokens = ledger.tokens + EXCLUDED.tokens,
		    display_name = EXCLUDED.display_name,
		    daily_day = EXCLUDED.daily_day,
		    updated_at = now()
		WHERE ledger.daily_day < EXCLUDED.daily_day
		RETURNING ` + ledgerColumns

	entry, err := scanLedgerEntry(s.db.QueryRowContext(ctx, query, actor.ID(), int64(money), tokens, actor.DisplayName(), day))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAlreadyClaimed
		}
		log.Error("failed to claim daily reward",
			slog.String("error", err.Error()),
			slog.String("actor_id", actor.ID()),
			slog.Int64("day", day))
		return nil, MapError(err)
	}

	log.Info("daily reward claimed",
		slog.String("actor_id", actor.ID()),
		slog.Int64("day", day),
		slog.Int64("money", int64(money)),
		slog.Int64("tokens", tokens))
	return entry, nil
}

// TopByBalance implements store.LedgerStore.TopByBalance
func (s *PostgresLedgerStore) TopByBalance(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger ORDER BY balance DESC LIMIT $1`
	return s.queryEntries(ctx, query, limit)
}

// TopByTokens implements store.LedgerStore.TopByTokens
func (s *PostgresLedgerStore) TopByTokens(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger WHERE tokens > 0 ORDER BY tokens DESC LIMIT $1`
	return s.queryEntries(ctx, query, limit)
}

// CreditBalanceByID implements store.LedgerStore.CreditBalanceByID
// Bulk credit path for the weekly distribution: no display name refresh, and
// a missing entry is an error rather than an implicit create, since winners
// always hold an entry already.
func (s *PostgresLedgerStore) CreditBalanceByID(ctx context.Context, actorID string, amount domain.Cents) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE ledger SET balance = balance + $2, updated_at = now() WHERE actor_id = $1`

	result, err := s.db.ExecContext(ctx, query, actorID, int64(amount))
	if err != nil {
		log.Error("failed to credit balance",
			slog.String("error", err.Error()),
			slog.String("actor_id", actorID))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrLedgerEntryNotFound
	}
	return nil
}

// ResetAllTokens implements store.LedgerStore.ResetAllTokens
func (s *PostgresLedgerStore) ResetAllTokens(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE ledger SET tokens = 0, tokens_bought = 0, updated_at = now() WHERE tokens <> 0 OR tokens_bought <> 0`

	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		log.Error("failed to reset tokens", slog.String("error", err.Error()))
		return MapError(err)
	}

	if rows, err := result.RowsAffected(); err == nil {
		log.Info("token counters reset", slog.Int64("entries", rows))
	}
	return nil
}

func (s *PostgresLedgerStore) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query ledger entries", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		var balance int64
		if err := rows.Scan(
			&entry.ActorID,
			&balance,
			&entry.Tokens,
			&entry.TokensBought,
			&entry.DisplayName,
			&entry.DailyDay,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		entry.Balance = domain.Cents(balance)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return entries, nil
}

// rowScanner matches *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLedgerEntry(row rowScanner) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	var balance int64
	if err := row.Scan(
		&entry.ActorID,
		&balance,
		&entry.Tokens,
		&entry.TokensBought,
		&entry.DisplayName,
		&entry.DailyDay,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	entry.Balance = domain.Cents(balance)
	return &entry, nil
}
