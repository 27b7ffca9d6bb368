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

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyEmail is returned when an email address is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrEmptyUsername is returned when a username is missing.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyHashedPassword is returned when an entity that must carry a
	// password hash has none.
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

	// ErrEmptyAPIKey is returned when a client has no API key.
	ErrEmptyAPIKey = errors.New("api key cannot be empty")

	// ErrMissingClient is returned when a user is not attached to a client.
	ErrMissingClient = errors.New("user must belong to a client")

	// ErrNegativeValue is returned when a numeric product field is below zero.
	ErrNegativeValue = errors.New("value cannot be negative")
)

// ValidationError describes a single field that failed validation.
// It wraps one of the sentinel errors above so callers can use errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel, falling back to ErrValidation.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// Is reports every ValidationError as an ErrValidation in addition to its
// wrapped sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
