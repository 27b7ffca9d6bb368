package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithErrorAndLog(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusBadRequest, "Validation failed",
		errors.New("password=hunter22 rejected"),
		WithDetails([]FieldError{{Field: "email", Message: "is required"}}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "hunter22")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Error)
	assert.Len(t, body.TraceID, 32)
	assert.Equal(t, []FieldError{{Field: "email", Message: "is required"}}, body.Details)
}

func TestRespondWithErrorOmitsEmptyDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusNotFound, "Product not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, rec.Body.String())
}

func TestRespondNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestTraceIDs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetTraceID(req.Context()))

	a := GetTraceID(SetTraceID(req.Context()))
	b := GetTraceID(SetTraceID(req.Context()))
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
