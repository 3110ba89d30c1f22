// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when a transaction amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidDirection is returned when a direction is neither income nor outcome.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidCardType is returned when a card type is neither payout nor recurrent.
	ErrInvalidCardType = errors.New("invalid card type")

	// ErrDirectionMismatch is returned when a transaction's method direction
	// does not match its type. Payments require income, payouts require outcome.
	ErrDirectionMismatch = errors.New("method direction does not match transaction type")

	// ErrStatusFinal is returned when a status transition is attempted on a
	// transaction that has already reached a terminal status.
	ErrStatusFinal = errors.New("transaction status is already final")
)

// ValidationError provides field-level context for a validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
