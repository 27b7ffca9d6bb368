package auth

import (
	"context"
	"strings"
	"time"
)

// JWTService defines operations for managing JWT access tokens issued to clients.
type JWTService interface {
	// GenerateToken creates a signed access token for the client.
	// Returns the token and its expiry time.
	GenerateToken(ctx context.Context, clientID int64, admin bool) (string, time.Time, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of an access token.
type Claims struct {
	ClientID  int64
	Admin     bool
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// LooksLikeJWT reports whether token has the three dot-separated segments of
// a compact JWS. API keys never contain dots.
func LooksLikeJWT(token string) bool {
	return strings.Count(token, ".") == 2
}
