package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"username" validate:"required,max=5"`
	Stock *int   `json:"stock" validate:"omitempty,gte=0"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"object", `{"email":"a@b.io","username":"ana"}`, false},
		{"object with surrounding whitespace", "  \n{\"email\":\"a@b.io\"}\n ", false},
		{"empty", ``, true},
		{"whitespace only", "   ", true},
		{"invalid json", `{"email":`, true},
		{"array", `[{"email":"a@b.io"}]`, true},
		{"string", `"hello"`, true},
		{"null", `null`, true},
		{"trailing object", `{"email":"a@b.io"}{"email":"c@d.io"}`, true},
		{"trailing garbage", `{"email":"a@b.io"} x`, true},
		{"wrong field type", `{"email": 5}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sampleRequest
			err := DecodeJSON(req, &dst)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBody)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "a@b.io", dst.Email)
			}
		})
	}
}

func TestDecodeJSONRejectsOversizedBody(t *testing.T) {
	body := `{"username":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dst sampleRequest
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrInvalidBody)
}

func TestValidationDetailsAggregatesFields(t *testing.T) {
	stock := -1
	err := ValidateRequest(&sampleRequest{Email: "nope", Name: "toolongname", Stock: &stock})
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 3)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "must be at most 5 characters", byField["username"])
	assert.Equal(t, "must be greater than or equal to 0", byField["stock"])
}

func TestValidationDetailsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, ValidationDetails(ErrInvalidBody))
	assert.NoError(t, ValidateRequest(&sampleRequest{Email: "a@b.io", Name: "ana"}))
}
