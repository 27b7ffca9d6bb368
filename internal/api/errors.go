package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/bilemo-api/internal/api/shared"
	"github.com/phrazzld/bilemo-api/internal/authz"
	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/service/auth"
	"github.com/phrazzld/bilemo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrInvalidBody):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, authz.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

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

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.As(err, &verr):
		return "Validation failed"
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	case errors.Is(err, shared.ErrInvalidBody):
		return "Invalid request body"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, authz.ErrUnauthorized):
		return "Authentication required"
	case errors.Is(err, authz.ErrForbidden):
		return "Access denied"

	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrClientNotFound):
		return "Client not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. Validator errors and
// domain validation errors carry per-field details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var opts []shared.ResponseOption
	if details := errorDetails(err); len(details) > 0 {
		opts = append(opts, shared.WithDetails(details))
	}
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

func errorDetails(err error) []shared.FieldError {
	if details := shared.ValidationDetails(err); details != nil {
		return details
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return []shared.FieldError{{Field: verr.Field, Message: verr.Message}}
	}
	return nil
}
