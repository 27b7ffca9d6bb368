package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/service/auth"
	"github.com/phrazzld/bilemo-api/internal/store"
)

// Token is an issued access token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	ClientID    int64
}

// NewClientInput carries the fields needed to provision a client.
type NewClientInput struct {
	Username string
	Email    string
	Address  string
	Password string
	Admin    bool
}

// ClientService authenticates clients and exposes their profiles.
type ClientService interface {
	Get(ctx context.Context, id int64) (*domain.Client, error)

	// AuthenticateAPIKey resolves the client owning apiKey.
	// Returns auth.ErrInvalidToken for an unknown key.
	AuthenticateAPIKey(ctx context.Context, apiKey string) (*domain.Client, error)

	// IssueToken exchanges a client's email and password for an access token.
	// Returns auth.ErrInvalidCredentials on any mismatch.
	IssueToken(ctx context.Context, email, password string) (*Token, error)

	// Provision creates a client with a fresh API key and returns both.
	Provision(ctx context.Context, in NewClientInput) (*domain.Client, string, error)
}

type clientService struct {
	clients  store.ClientStore
	jwt      auth.JWTService
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewClientService creates a ClientService.
func NewClientService(
	clients store.ClientStore,
	jwt auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (ClientService, error) {
	switch {
	case clients == nil:
		return nil, fmt.Errorf("%w: client store cannot be nil", ErrServiceMisconfigured)
	case jwt == nil:
		return nil, fmt.Errorf("%w: jwt service cannot be nil", ErrServiceMisconfigured)
	case hasher == nil || verifier == nil:
		return nil, fmt.Errorf("%w: password hasher and verifier are required", ErrServiceMisconfigured)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &clientService{
		clients:  clients,
		jwt:      jwt,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "client_service")),
	}, nil
}

func (s *clientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("client", "get", "failed to retrieve client", err)
	}
	return c, nil
}

func (s *clientService) AuthenticateAPIKey(ctx context.Context, apiKey string) (*domain.Client, error) {
	if apiKey == "" {
		return nil, auth.ErrMissingToken
	}
	c, err := s.clients.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Debug("unknown api key")
			return nil, auth.ErrInvalidToken
		}
		return nil, NewServiceError("client", "authenticate", "failed to look up api key", err)
	}
	return c, nil
}

func (s *clientService) IssueToken(ctx context.Context, email, password string) (*Token, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	c, err := s.clients.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			log.Debug("token requested for unknown client email")
			return nil, auth.ErrInvalidCredentials
		}
		return nil, NewServiceError("client", "issue_token", "failed to look up client", err)
	}

	if err := s.verifier.Compare(c.HashedPassword, password); err != nil {
		log.Debug("token requested with wrong password", slog.Int64("client_id", c.ID))
		return nil, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateToken(ctx, c.ID, c.Admin)
	if err != nil {
		return nil, NewServiceError("client", "issue_token", "failed to generate token", err)
	}

	log.Info("access token issued", slog.Int64("client_id", c.ID))
	return &Token{AccessToken: token, ExpiresAt: expiresAt, ClientID: c.ID}, nil
}

func (s *clientService) Provision(ctx context.Context, in NewClientInput) (*domain.Client, string, error) {
	if in.Password == "" {
		return nil, "", domain.NewValidationError("password", "is required", domain.ErrEmptyHashedPassword)
	}

	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		return nil, "", NewServiceError("client", "provision", "failed to generate api key", err)
	}
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", NewServiceError("client", "provision", "failed to hash password", err)
	}

	c, err := domain.NewClient(in.Username, in.Email, in.Address, apiKey, hashed)
	if err != nil {
		return nil, "", err
	}
	c.Admin = in.Admin

	if err := s.clients.Create(ctx, c); err != nil {
		return nil, "", NewServiceError("client", "provision", "failed to save client", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("client provisioned",
		slog.Int64("client_id", c.ID),
		slog.Bool("admin", c.Admin))
	return c, apiKey, nil
}
