package service

import (
	"context"
	"database/sql"
	"sync"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// testActor is a minimal domain.Actor for tests.
type testActor struct {
	id   string
	name string
	bot  bool
}

func (a testActor) ID() string          { return a.id }
func (a testActor) DisplayName() string { return a.name }
func (a testActor) AvatarURL() string   { return "" }
func (a testActor) Bot() bool           { return a.bot }

// fakeLedgerStore is an in-memory LedgerStore with the same conditional
// semantics as the Postgres implementation: guards and writes are atomic
// under one mutex.
type fakeLedgerStore struct {
	mu      sync.Mutex
	entries map[string]*domain.LedgerEntry

	// failWith, when set, makes every method return this error.
	failWith error
}

var _ store.LedgerStore = (*fakeLedgerStore)(nil)

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{entries: make(map[string]*domain.LedgerEntry)}
}

func (f *fakeLedgerStore) upsert(actor domain.Actor) *domain.LedgerEntry {
	entry, ok := f.entries[actor.ID()]
	if !ok {
		entry = &domain.LedgerEntry{ActorID: actor.ID()}
		f.entries[actor.ID()] = entry
	}
	entry.DisplayName = actor.DisplayName()
	return entry
}

func (f *fakeLedgerStore) GetByActorID(ctx context.Context, actorID string) (*domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	entry, ok := f.entries[actorID]
	if !ok {
		return nil, store.ErrLedgerEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeLedgerStore) AddBalance(ctx context.Context, actor domain.Actor, delta domain.Cents) (domain.Cents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	entry := f.upsert(actor)
	entry.Balance += delta
	return entry.Balance, nil
}

func (f *fakeLedgerStore) AddTokens(ctx context.Context, actor domain.Actor, delta int64, purchase bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	entry := f.upsert(actor)
	entry.Tokens += delta
	if purchase {
		entry.TokensBought += delta
	}
	return entry.Tokens, nil
}

func (f *fakeLedgerStore) DebitBalance(ctx context.Context, actor domain.Actor, amount domain.Cents) (domain.Cents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	entry, ok := f.entries[actor.ID()]
	if !ok || entry.Balance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	entry.Balance -= amount
	return entry.Balance, nil
}

func (f *fakeLedgerStore) DebitTokens(ctx context.Context, actor domain.Actor, amount int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	entry, ok := f.entries[actor.ID()]
	if !ok || entry.Tokens < amount {
		return 0, domain.ErrInsufficientFunds
	}
	entry.Tokens -= amount
	return entry.Tokens, nil
}

func (f *fakeLedgerStore) PurchaseTokens(ctx context.Context, actor domain.Actor, count int64, price domain.Cents, weeklyCap int64) (*domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	cost := price * domain.Cents(count)
	entry, ok := f.entries[actor.ID()]
	if !ok || entry.Balance < cost {
		return nil, domain.ErrInsufficientFunds
	}
	if entry.TokensBought+count > weeklyCap {
		return nil, domain.ErrWeeklyCapExceeded
	}
	entry.Balance -= cost
	entry.Tokens += count
	entry.TokensBought += count
	entry.DisplayName = actor.DisplayName()
	copied := *entry
	return &copied, nil
}

func (f *fakeLedgerStore) ClaimDaily(ctx context.Context, actor domain.Actor, day int64, money domain.Cents, tokens int64) (*domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	entry := f.upsert(actor)
	if entry.DailyDay >= day {
		return nil, domain.ErrAlreadyClaimed
	}
	entry.Balance += money
	entry.Tokens += tokens
	entry.DailyDay = day
	copied := *entry
	return &copied, nil
}

func (f *fakeLedgerStore) TopByBalance(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return topBy(f.entries, limit, func(e *domain.LedgerEntry) int64 { return int64(e.Balance) }, nil), nil
}

func (f *fakeLedgerStore) TopByTokens(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	positive := func(e *domain.LedgerEntry) bool { return e.Tokens > 0 }
	return topBy(f.entries, limit, func(e *domain.LedgerEntry) int64 { return e.Tokens }, positive), nil
}

func topBy(entries map[string]*domain.LedgerEntry, limit int, key func(*domain.LedgerEntry) int64, keep func(*domain.LedgerEntry) bool) []domain.LedgerEntry {
	var out []domain.LedgerEntry
	for _, e := range entries {
		if keep != nil && !keep(e) {
			continue
		}
		out = append(out, *e)
	}
	// Insertion sort; test populations are tiny.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && key(&out[j]) > key(&out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeLedgerStore) CreditBalanceByID(ctx context.Context, actorID string, amount domain.Cents) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	entry, ok := f.entries[actorID]
	if !ok {
		return store.ErrLedgerEntryNotFound
	}
	entry.Balance += amount
	return nil
}

func (f *fakeLedgerStore) ResetAllTokens(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, e := range f.entries {
		e.Tokens = 0
		e.TokensBought = 0
	}
	return nil
}

func (f *fakeLedgerStore) WithTx(tx *sql.Tx) store.LedgerStore { return f }

// balance returns the stored balance, zero for unknown actors.
func (f *fakeLedgerStore) balance(actorID string) domain.Cents {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[actorID]; ok {
		return e.Balance
	}
	return 0
}

func (f *fakeLedgerStore) tokens(actorID string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[actorID]; ok {
		return e.Tokens
	}
	return 0
}

// fakeTxRunner satisfies store.TxRunner without a database: the fakes are
// already atomic under their own mutexes, so fn runs directly with a nil tx
// (which the fakes' WithTx ignores).
type fakeTxRunner struct {
	failWith error
}

var _ store.TxRunner = (*fakeTxRunner)(nil)

func (f *fakeTxRunner) RunTx(ctx context.Context, fn store.TxFn) error {
	if f.failWith != nil {
		return f.failWith
	}
	return fn(ctx, nil)
}

// fakePoolStore is an in-memory PoolStore.
type fakePoolStore struct {
	mu       sync.Mutex
	pool     int64
	forecast []domain.DailyForecast

	failWith error
}

var _ store.PoolStore = (*fakePoolStore)(nil)

func newFakePoolStore() *fakePoolStore {
	return &fakePoolStore{}
}

func (f *fakePoolStore) Get(ctx context.Context) (*domain.PoolState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	forecast := make([]domain.DailyForecast, len(f.forecast))
	copy(forecast, f.forecast)
	return &domain.PoolState{Pool: f.pool, Forecast: forecast}, nil
}

func (f *fakePoolStore) AddToPool(ctx context.Context, delta int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.pool += delta
	return f.pool, nil
}

func (f *fakePoolStore) SetForecast(ctx context.Context, forecast []domain.DailyForecast) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.forecast = make([]domain.DailyForecast, len(forecast))
	copy(f.forecast, forecast)
	return nil
}

func (f *fakePoolStore) DrainPool(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	drained := f.pool
	f.pool = 0
	return drained, nil
}

func (f *fakePoolStore) WithTx(tx *sql.Tx) store.PoolStore { return f }

// fakeTransactionStore is an in-memory append-only TransactionStore.
type fakeTransactionStore struct {
	mu      sync.Mutex
	records []domain.Transaction

	failWith error
}

var _ store.TransactionStore = (*fakeTransactionStore)(nil)

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{}
}

func (f *fakeTransactionStore) Record(ctx context.Context, tx *domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.records = append(f.records, *tx)
	return nil
}

func (f *fakeTransactionStore) ListByActor(ctx context.Context, actorID string, limit int) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.Transaction
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].ActorID == actorID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeTransactionStore) WithTx(tx *sql.Tx) store.TransactionStore { return f }

// byType returns recorded transactions of one type, in append order.
func (f *fakeTransactionStore) byType(txType domain.TransactionType) []domain.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Transaction
	for _, r := range f.records {
		if r.Type == txType {
			out = append(out, r)
		}
	}
	return out
}
