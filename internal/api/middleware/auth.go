package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/bilemo-api/internal/api/shared"
	"github.com/phrazzld/bilemo-api/internal/authz"
	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/redact"
	"github.com/phrazzld/bilemo-api/internal/service/auth"
)

// APIKeyAuthenticator resolves the client owning an opaque API key.
type APIKeyAuthenticator interface {
	AuthenticateAPIKey(ctx context.Context, apiKey string) (*domain.Client, error)
}

// AuthMiddleware identifies the calling client from a bearer credential.
type AuthMiddleware struct {
	jwtService auth.JWTService
	apiKeys    APIKeyAuthenticator
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, apiKeys APIKeyAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		apiKeys:    apiKeys,
	}
}

// Authenticate resolves "Authorization: Bearer <credential>" into an
// authz.Principal stored in the request context. The credential is either a
// JWT access token or a client API key. Requests without the header pass
// through anonymously; route guards decide whether that is acceptable.
// A malformed header or a rejected credential answers 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		scheme, credential, ok := strings.Cut(authHeader, " ")
		credential = strings.TrimSpace(credential)
		if !ok || !strings.EqualFold(scheme, "Bearer") || credential == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		principal, err := m.resolve(r.Context(), credential)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContextOrDefault(r.Context(), slog.Default()).Error("failed to authenticate request",
					slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := authz.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) resolve(ctx context.Context, credential string) (*authz.Principal, error) {
	if auth.LooksLikeJWT(credential) {
		claims, err := m.jwtService.ValidateToken(ctx, credential)
		if err != nil {
			return nil, err
		}
		return &authz.Principal{ClientID: claims.ClientID, Admin: claims.Admin}, nil
	}

	client, err := m.apiKeys.AuthenticateAPIKey(ctx, credential)
	if err != nil {
		return nil, err
	}
	return &authz.Principal{ClientID: client.ID, Admin: client.Admin}, nil
}
