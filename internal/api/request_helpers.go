package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/bilemo-api/internal/api/shared"
	"github.com/phrazzld/bilemo-api/internal/domain"
)

// getPathID extracts a numeric ID from the named URL parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// decodeAndValidate reads a single JSON object into v and runs its validate
// tags. Validator failures are reported as domain.ErrValidation.
func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		return err
	}
	if err := shared.ValidateRequest(v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}
