package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/bilemo-api/internal/api/shared"
	"github.com/phrazzld/bilemo-api/internal/authz"
	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/hateoas"
	"github.com/phrazzld/bilemo-api/internal/pagination"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/service"
)

var errUserNotResolved = errors.New("user was not resolved for this route")

// UserHandler handles the endpoints managing the users of a client.
type UserHandler struct {
	users        service.UserService
	linker       *hateoas.Linker
	defaultLimit int
	logger       *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	users service.UserService,
	linker *hateoas.Linker,
	defaultLimit int,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:        users,
		linker:       linker,
		defaultLimit: defaultLimit,
		logger:       logger.With(slog.String("handler", "user")),
	}
}

// ResolveUser loads the user named by the {id} path parameter and reports
// its owning client. Used with authz.RequireOwner.
func (h *UserHandler) ResolveUser(r *http.Request) (int64, any, error) {
	id, err := getPathID(r, "id")
	if err != nil {
		return 0, nil, err
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		return 0, nil, err
	}
	return user.ClientID, user, nil
}

// ListUsers handles GET /api/users. Admin only.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r.URL.Query(), h.defaultLimit)

	page, err := h.users.List(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp, err := listResponse(h.linker.ForRequest(r), page, params.Limit,
		userToResponse, userItemRelations, RouteUserList, nil)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetUser handles GET /api/users/{id}. The user has already been resolved
// and ownership-checked by the route guard.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := authz.ResourceFromContext[*domain.User](r.Context())
	if !ok {
		HandleAPIError(w, r, errUserNotResolved)
		return
	}
	h.respondUser(w, r, http.StatusOK, user)
}

// CreateUser handles POST /api/users. The new user belongs to the
// authenticated client.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	principal := authz.PrincipalFromContext(r.Context())
	if principal == nil {
		HandleAPIError(w, r, authz.ErrUnauthorized)
		return
	}

	var req CreateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.Create(r.Context(), principal.ClientID, service.NewUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondUser(w, r, http.StatusCreated, user)
}

// DeleteUser handles DELETE /api/users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := authz.ResourceFromContext[*domain.User](r.Context())
	if !ok {
		HandleAPIError(w, r, errUserNotResolved)
		return
	}

	if err := h.users.Delete(r.Context(), user.ID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("user deleted via API",
		slog.Int64("user_id", user.ID))
	shared.RespondNoContent(w)
}

func (h *UserHandler) respondUser(w http.ResponseWriter, r *http.Request, status int, u *domain.User) {
	resp := userToResponse(u)
	env, err := h.linker.ForRequest(r).AddLinks(resp, userRelations(resp))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if status == http.StatusCreated {
		w.Header().Set("Location", env.Links["self"])
	}
	shared.RespondWithJSON(w, r, status, env)
}
