package domain

import (
	"errors"
	"time"
)

// Ledger-specific validation errors
var (
	// ErrEmptyActorID is returned when a ledger entry's actor ID is empty.
	ErrEmptyActorID = errors.New("actor ID cannot be empty")

	// ErrNegativeTokens is returned when a ledger entry would hold a negative
	// token count.
	ErrNegativeTokens = errors.New("token count cannot be negative")
)

// LedgerEntry is the durable per-actor record of currency balance, token
// holdings, and weekly purchase bookkeeping. Entries are created lazily on
// first mutation and never deleted; a missing entry reads as all zeros.
type LedgerEntry struct {
	ActorID      string    `json:"actor_id"`
	Balance      Cents     `json:"balance"`
	Tokens       int64     `json:"tokens"`
	TokensBought int64     `json:"tokens_bought"`
	DisplayName  string    `json:"display_name"`
	DailyDay     int64     `json:"daily_day"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewLedgerEntry creates a zeroed ledger entry for the given actor, caching
// its display name. Returns an error if validation fails.
func NewLedgerEntry(actor Actor) (*LedgerEntry, error) {
	entry := &LedgerEntry{
		ActorID:     actor.ID(),
		DisplayName: actor.DisplayName(),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks the ledger entry's invariants. The balance may be any
// cent-rounded value, including negative under administrative correction, but
// tokens must never go below zero.
func (e *LedgerEntry) Validate() error {
	if e.ActorID == "" {
		return ErrEmptyActorID
	}
	if e.Tokens < 0 {
		return ErrNegativeTokens
	}
	return nil
}
