package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/pagination"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/service/auth"
	"github.com/phrazzld/bilemo-api/internal/store"
)

// NewUserInput carries the fields of a user registration.
type NewUserInput struct {
	Username string
	Email    string
	Password string
}

// UserService manages the users registered by clients.
type UserService interface {
	// Create registers a user owned by clientID.
	// Returns store.ErrEmailExists when the email is already registered.
	Create(ctx context.Context, clientID int64, in NewUserInput) (*domain.User, error)

	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, params pagination.Params) (pagination.Page[*domain.User], error)
	ListByClient(ctx context.Context, clientID int64, params pagination.Params) (pagination.Page[*domain.User], error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users  store.UserStore
	db     store.TxBeginner
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a UserService. db opens the transaction that wraps
// the email check and the insert.
func NewUserService(
	users store.UserStore,
	db store.TxBeginner,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (UserService, error) {
	switch {
	case users == nil:
		return nil, fmt.Errorf("%w: user store cannot be nil", ErrServiceMisconfigured)
	case db == nil:
		return nil, fmt.Errorf("%w: database cannot be nil", ErrServiceMisconfigured)
	case hasher == nil:
		return nil, fmt.Errorf("%w: password hasher cannot be nil", ErrServiceMisconfigured)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		users:  users,
		db:     db,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userService) Create(ctx context.Context, clientID int64, in NewUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.Password == "" {
		return nil, domain.NewValidationError("password", "is required", domain.ErrEmptyHashedPassword)
	}
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, NewServiceError("user", "create", "failed to hash password", err)
	}

	user, err := domain.NewUser(clientID, in.Username, in.Email, hashed)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.users.WithTx(tx)

		_, err := txStore.GetByEmail(ctx, user.Email)
		switch {
		case err == nil:
			return store.ErrEmailExists
		case !errors.Is(err, store.ErrUserNotFound):
			return err
		}

		return txStore.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to create user with existing email", slog.Int64("client_id", clientID))
		} else {
			log.Error("failed to create user",
				slog.String("error", err.Error()),
				slog.Int64("client_id", clientID))
		}
		return nil, NewServiceError("user", "create", "failed to create user", err)
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.Int64("client_id", clientID))
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("user", "get", "failed to retrieve user", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, params pagination.Params) (pagination.Page[*domain.User], error) {
	items, total, err := s.users.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return pagination.Page[*domain.User]{}, NewServiceError("user", "list", "failed to list users", err)
	}
	return pagination.FromWindow(items, total, params.Page, params.Limit), nil
}

func (s *userService) ListByClient(
	ctx context.Context,
	clientID int64,
	params pagination.Params,
) (pagination.Page[*domain.User], error) {
	items, total, err := s.users.ListByClient(ctx, clientID, params.Offset(), params.Limit)
	if err != nil {
		return pagination.Page[*domain.User]{}, NewServiceError("user", "list_by_client",
			"failed to list client users", err)
	}
	return pagination.FromWindow(items, total, params.Page, params.Limit), nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return NewServiceError("user", "delete", "failed to delete user", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted", slog.Int64("user_id", id))
	return nil
}
