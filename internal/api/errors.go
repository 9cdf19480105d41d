package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/LasseVKP/LDCBots/internal/api/shared"
	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/service"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Business rule rejections
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrTargetNotEligible),
		errors.Is(err, domain.ErrWeeklyCapExceeded):
		return http.StatusUnprocessableEntity

	// Conflict errors
	case errors.Is(err, domain.ErrAlreadyClaimed),
		errors.Is(err, domain.ErrSessionResolved):
		return http.StatusConflict

	// Not found errors
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Amount must be positive"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient funds"

	case errors.Is(err, domain.ErrTargetNotEligible):
		return "Target cannot receive payments"

	case errors.Is(err, domain.ErrWeeklyCapExceeded):
		return "Weekly token purchase cap exceeded"

	case errors.Is(err, domain.ErrAlreadyClaimed):
		return "Daily reward already claimed"

	case errors.Is(err, domain.ErrSessionResolved):
		return "Session is already resolved"

	case errors.Is(err, service.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'PayRequest.Amount' Error:Field validation
		// for 'Amount' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "gt":
		return "must be greater than the minimum"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the standard error response for err. An empty
// userMessage falls back to the sanitized message for the error type.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
