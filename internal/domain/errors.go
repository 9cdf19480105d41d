package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when a payment, wager, or purchase amount
	// is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when an actor's balance or token count
	// is below the requested debit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTargetNotEligible is returned when the payee of a transfer is not a
	// valid recipient, e.g. an automated actor or the payer themselves.
	ErrTargetNotEligible = errors.New("target is not an eligible recipient")

	// ErrAlreadyClaimed is returned when the daily reward was already claimed
	// for the current day index.
	ErrAlreadyClaimed = errors.New("daily reward already claimed")

	// ErrWeeklyCapExceeded is returned when a token purchase would push the
	// actor's weekly purchase count over the configured cap.
	ErrWeeklyCapExceeded = errors.New("weekly token purchase cap exceeded")

	// ErrSessionNotOwned indicates an action on a blackjack session by an
	// actor other than its owner. Handlers swallow it rather than surface it:
	// the session state is left untouched and the current view is returned.
	ErrSessionNotOwned = errors.New("session is owned by another actor")

	// ErrSessionResolved is returned when a player action arrives after the
	// session has already reached its terminal state.
	ErrSessionResolved = errors.New("session is already resolved")
)

// ValidationError provides field-level context for validation failures.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "validation failed: " + e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError wrapping ErrValidation
// unless a more specific error is provided.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}
