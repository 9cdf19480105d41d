package store

import (
	"context"
	"database/sql"

	"github.com/LasseVKP/LDCBots/internal/domain"
)

// LedgerStore defines the interface for ledger persistence. Every increment
// method must be implemented as a single atomic statement: concurrent
// mutations to the same record must never lose updates, and the conditional
// methods must evaluate their guard inside the same statement as the write so
// no check-then-debit race window exists.
//
// Entries are created lazily: the Add* methods upsert, and reads of a missing
// actor return ErrLedgerEntryNotFound, which callers treat as an all-zero
// record. Every mutation that carries an Actor also refreshes the cached
// display name, so leaderboards never need a live directory lookup.
type LedgerStore interface {
	// GetByActorID retrieves the ledger entry for the given actor ID.
	// Returns ErrLedgerEntryNotFound if the actor has no entry yet.
	GetByActorID(ctx context.Context, actorID string) (*domain.LedgerEntry, error)

	// AddBalance atomically increments the actor's balance by delta (which
	// may be negative), creating the entry if absent, and returns the new
	// balance.
	AddBalance(ctx context.Context, actor domain.Actor, delta domain.Cents) (domain.Cents, error)

	// AddTokens atomically increments the actor's token count by delta,
	// creating the entry if absent, and returns the new count. When purchase
	// is true the weekly tokens_bought counter is incremented as well.
	AddTokens(ctx context.Context, actor domain.Actor, delta int64, purchase bool) (int64, error)

	// DebitBalance atomically subtracts amount from the actor's balance,
	// guarded by balance >= amount in the same statement. Returns the new
	// balance, or domain.ErrInsufficientFunds if the guard fails or the
	// entry is absent.
	DebitBalance(ctx context.Context, actor domain.Actor, amount domain.Cents) (domain.Cents, error)

	// DebitTokens is DebitBalance for the token column. Returns the new
	// token count or domain.ErrInsufficientFunds.
	DebitTokens(ctx context.Context, actor domain.Actor, amount int64) (int64, error)

	// PurchaseTokens debits count*price from the balance and credits count
	// tokens (and tokens_bought) in one conditional statement, guarded by
	// both sufficient balance and the weekly cap. On failure it reports
	// domain.ErrInsufficientFunds or domain.ErrWeeklyCapExceeded, whichever
	// guard broke.
	PurchaseTokens(ctx context.Context, actor domain.Actor, count int64, price domain.Cents, weeklyCap int64) (*domain.LedgerEntry, error)

	// ClaimDaily credits money and tokens and stamps daily_day with day, all
	// guarded by daily_day < day in the same statement. Returns the updated
	// entry, or domain.ErrAlreadyClaimed if the guard fails.
	ClaimDaily(ctx context.Context, actor domain.Actor, day int64, money domain.Cents, tokens int64) (*domain.LedgerEntry, error)

	// TopByBalance returns up to limit entries ordered by descending
	// balance. The order among equal balances is unspecified.
	TopByBalance(ctx context.Context, limit int) ([]domain.LedgerEntry, error)

	// TopByTokens returns up to limit entries with tokens > 0 ordered by
	// descending token count. The order among equal counts is unspecified.
	TopByTokens(ctx context.Context, limit int) ([]domain.LedgerEntry, error)

	// CreditBalanceByID increments an existing entry's balance without
	// refreshing the cached display name. Bulk path for the weekly
	// distribution.
	CreditBalanceByID(ctx context.Context, actorID string, amount domain.Cents) error

	// ResetAllTokens zeroes tokens and tokens_bought for every entry.
	ResetAllTokens(ctx context.Context) error

	// WithTx returns a LedgerStore bound to the provided transaction.
	WithTx(tx *sql.Tx) LedgerStore
}
