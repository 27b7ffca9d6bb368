package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bilemo-api/internal/api/shared"
	"github.com/phrazzld/bilemo-api/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	clients service.ClientService
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(clients service.ClientService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		clients: clients,
		logger:  logger.With(slog.String("handler", "auth")),
	}
}

// IssueToken handles POST /api/auth/token. It exchanges a client's email
// and password for a short-lived access token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, err := h.clients.IssueToken(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tokenToResponse(token))
}
