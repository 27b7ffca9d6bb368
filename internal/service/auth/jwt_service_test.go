package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/bilemo-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestJWTService(t *testing.T, now func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(testSecret, time.Hour, now)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, func() time.Time { return fixed })

	token, expiresAt, err := svc.GenerateToken(context.Background(), 42, true)
	require.NoError(t, err)
	assert.True(t, LooksLikeJWT(token))
	assert.Equal(t, fixed.Add(time.Hour), expiresAt)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.ClientID)
	assert.True(t, claims.Admin)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestJWTService(t, func() time.Time { return fixed })
	valid, _, err := issuer.GenerateToken(context.Background(), 1, false)
	require.NoError(t, err)

	other, err := newHMACJWTService("wrong-secret-that-is-long-enough-for-testing", time.Hour,
		func() time.Time { return fixed })
	require.NoError(t, err)

	later := newTestJWTService(t, func() time.Time { return fixed.Add(2 * time.Hour) })
	earlier := newTestJWTService(t, func() time.Time { return fixed.Add(-time.Hour) })

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"cid": 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *hmacJWTService
		token string
		want  error
	}{
		{"malformed", issuer, "not.a.jwt", ErrInvalidToken},
		{"wrong secret", other, valid, ErrInvalidToken},
		{"expired", later, valid, ErrExpiredToken},
		{"issued in the future", earlier, valid, ErrInvalidToken},
		{"none algorithm", issuer, noneToken, ErrInvalidToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.svc.ValidateToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLooksLikeJWT(t *testing.T) {
	t.Parallel()

	assert.True(t, LooksLikeJWT("a.b.c"))
	assert.False(t, LooksLikeJWT("0123456789abcdef0123456789abcdef01234567"))
	assert.False(t, LooksLikeJWT("a.b"))
}
