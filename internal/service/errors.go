package service

import (
	"errors"
	"fmt"
)

// Common service errors.
var (
	// ErrSessionNotFound indicates the referenced blackjack session does not
	// exist, either because it never did or because it already resolved and
	// was discarded. API layer should map this to HTTP 404 Not Found.
	ErrSessionNotFound = errors.New("blackjack session not found")
)

// Error handling principles:
//  1. Expected failures surface as the domain sentinel errors
//     (domain.ErrInvalidAmount, domain.ErrInsufficientFunds, ...).
//  2. Unexpected failures are wrapped in ServiceError with the operation
//     attached.
//  3. Callers use errors.Is/errors.As; the API layer maps the sentinels to
//     status codes.

// ServiceError wraps an unexpected failure with the service and operation
// that produced it.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{Service: service, Operation: operation, Err: err}
}
