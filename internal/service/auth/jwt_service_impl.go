package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/bilemo-api/internal/config"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
)

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration
}

type jwtCustomClaims struct {
	ClientID int64 `json:"cid"`
	Admin    bool  `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	return newHMACJWTService(cfg.JWTSecret, time.Duration(cfg.TokenLifetimeMinutes)*time.Minute, time.Now)
}

func newHMACJWTService(secret string, lifetime time.Duration, now func() time.Time) (*hmacJWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      now,
		clockSkew:     2 * time.Minute,
	}, nil
}

// GenerateToken implements JWTService.
func (s *hmacJWTService) GenerateToken(ctx context.Context, clientID int64, admin bool) (string, time.Time, error) {
	now := s.timeFunc()
	expiresAt := now.Add(s.tokenLifetime)

	claims := jwtCustomClaims{
		ClientID: clientID,
		Admin:    admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(clientID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign JWT access token",
			slog.String("error", err.Error()),
			slog.Int64("client_id", clientID))
		return "", time.Time{}, fmt.Errorf("failed to sign access token with HMAC-SHA256: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken implements JWTService.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("access token validation failed: token expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("access token validation failed: token not yet valid")
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("access token validation failed",
				slog.String("error", err.Error()),
				slog.String("error_type", fmt.Sprintf("%T", err)))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.ClientID <= 0 {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	out := &Claims{
		ClientID: claims.ClientID,
		Admin:    claims.Admin,
		Subject:  claims.Subject,
		ID:       claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
