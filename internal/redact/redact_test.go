package redact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		leaks    string
	}{
		{
			name:     "postgres dsn",
			input:    "dial failed: postgres://bilemo:s3cret@db:5432/bilemo",
			contains: CredentialPlaceholder,
			leaks:    "s3cret",
		},
		{
			name:     "jwt",
			input:    "token eyJhbGciOiJIUzI1NiJ9.eyJjaWQiOjF9.c2lnbmF0dXJl rejected",
			contains: JWTPlaceholder,
			leaks:    "eyJjaWQiOjF9",
		},
		{
			name:     "bearer api key",
			input:    "header Bearer 0123456789abcdef0123456789abcdef01234567",
			contains: KeyPlaceholder,
			leaks:    "0123456789abcdef",
		},
		{
			name:     "bare api key",
			input:    "lookup for 0123456789abcdef0123456789abcdef01234567 failed",
			contains: KeyPlaceholder,
			leaks:    "0123456789abcdef",
		},
		{
			name:     "bcrypt hash",
			input:    "hash $2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
			contains: HashPlaceholder,
			leaks:    "N9qo8uLOickgx2",
		},
		{
			name:     "password assignment",
			input:    "password=hunter22",
			contains: CredentialPlaceholder,
			leaks:    "hunter22",
		},
		{
			name:     "email",
			input:    "duplicate key for ana@example.com",
			contains: EmailPlaceholder,
			leaks:    "ana@example.com",
		},
		{
			name:     "sql",
			input:    "query failed: SELECT id, email FROM users WHERE id = $1",
			contains: SQLPlaceholder,
			leaks:    "FROM users",
		},
		{
			name:     "path",
			input:    "open /etc/bilemo/config.yaml: permission denied",
			contains: PathPlaceholder,
			leaks:    "/etc/bilemo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := String(tt.input)
			assert.Contains(t, got, tt.contains)
			assert.NotContains(t, got, tt.leaks)
		})
	}
}

func TestStringLeavesPlainTextAlone(t *testing.T) {
	assert.Equal(t, "", String(""))
	assert.Equal(t, "product not found", String("product not found"))
}

func TestError(t *testing.T) {
	assert.Equal(t, "", Error(nil))
	assert.Equal(t, "failed for "+EmailPlaceholder, Error(errors.New("failed for a@b.io")))
}
