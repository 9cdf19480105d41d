package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist in the
	// store. This is the generic form of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique record.
	ErrDuplicate = errors.New("record already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConditionFailed is returned when a conditional write's guard did
	// not hold, e.g. a debit against an insufficient balance or a claim on an
	// already-claimed day. Stores wrap it with the specific domain error so
	// callers can report the right failure.
	ErrConditionFailed = errors.New("conditional write failed")

	// ErrTransactionFailed is returned when a database transaction fails to
	// commit or an operation within it fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrLedgerEntryNotFound indicates the requested actor has no ledger
	// entry yet. Services usually treat this as an all-zero entry.
	ErrLedgerEntryNotFound = fmt.Errorf("%w: ledger entry", ErrNotFound)

	// ErrPoolStateNotFound indicates the singleton pool record has not been
	// created yet. The pool store creates it lazily on first use.
	ErrPoolStateNotFound = fmt.Errorf("%w: pool state", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "ledger entry", "pool state")
	Operation string // The operation that failed (e.g., "add balance")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
