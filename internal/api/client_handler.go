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
	"github.com/phrazzld/bilemo-api/internal/service"
)

var errClientNotResolved = errors.New("client was not resolved for this route")

// ClientHandler serves client profiles and the users a client owns.
type ClientHandler struct {
	clients      service.ClientService
	users        service.UserService
	linker       *hateoas.Linker
	defaultLimit int
	logger       *slog.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(
	clients service.ClientService,
	users service.UserService,
	linker *hateoas.Linker,
	defaultLimit int,
	logger *slog.Logger,
) *ClientHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientHandler{
		clients:      clients,
		users:        users,
		linker:       linker,
		defaultLimit: defaultLimit,
		logger:       logger.With(slog.String("handler", "client")),
	}
}

// ResolveClientID takes the owner straight from the {clientId} path
// parameter without loading anything.
func (h *ClientHandler) ResolveClientID(r *http.Request) (int64, any, error) {
	id, err := getPathID(r, "clientId")
	if err != nil {
		return 0, nil, err
	}
	return id, nil, nil
}

// ResolveClient loads the client named by {clientId}. A client owns itself.
func (h *ClientHandler) ResolveClient(r *http.Request) (int64, any, error) {
	id, err := getPathID(r, "clientId")
	if err != nil {
		return 0, nil, err
	}
	client, err := h.clients.Get(r.Context(), id)
	if err != nil {
		return 0, nil, err
	}
	return client.ID, client, nil
}

// ListClientUsers handles GET /api/client/{clientId}. A client without users
// gets an empty page.
func (h *ClientHandler) ListClientUsers(w http.ResponseWriter, r *http.Request) {
	clientID, err := getPathID(r, "clientId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	params := pagination.ParseParams(r.URL.Query(), h.defaultLimit)

	page, err := h.users.ListByClient(r.Context(), clientID, params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp, err := listResponse(h.linker.ForRequest(r), page, params.Limit,
		userToResponse, userItemRelations, RouteClientUsers, clientParams(clientID))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetClient handles GET /api/clients/{clientId}.
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	client, ok := authz.ResourceFromContext[*domain.Client](r.Context())
	if !ok {
		HandleAPIError(w, r, errClientNotResolved)
		return
	}

	resp := clientToResponse(client)
	env, err := h.linker.ForRequest(r).AddLinks(resp, clientRelations(resp))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, env)
}
