package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/hateoas"
	"github.com/phrazzld/bilemo-api/internal/pagination"
	"github.com/phrazzld/bilemo-api/internal/service"
)

// ProductRequest is the body of POST and PUT /api/products. Keys left out
// of a PUT body clear the stored attribute.
type ProductRequest struct {
	Modele           *string `json:"modele"           validate:"omitempty,max=255"`
	Marque           *string `json:"marque"           validate:"omitempty,max=255"`
	Prix             *int    `json:"prix"             validate:"omitempty,gte=0"`
	Description      *string `json:"description"`
	Stock            *int    `json:"stock"            validate:"omitempty,gte=0"`
	RAM              *int    `json:"ram"              validate:"omitempty,gte=0"`
	CapaciteStockage *string `json:"capaciteStockage" validate:"omitempty,max=255"`
}

// Attributes converts the request into product attributes.
func (r ProductRequest) Attributes() domain.ProductAttributes {
	return domain.ProductAttributes{
		Modele:           r.Modele,
		Marque:           r.Marque,
		Prix:             r.Prix,
		Description:      r.Description,
		Stock:            r.Stock,
		RAM:              r.RAM,
		CapaciteStockage: r.CapaciteStockage,
	}
}

// Nullable records whether a JSON key was present at all, and if so whether
// it held null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) applyTo(dst **T) {
	if n.Set {
		*dst = n.Value
	}
}

// ProductPatchRequest is the body of PATCH /api/products/{id}. Only keys
// present in the body change; an explicit null clears the attribute.
// Negative numbers are rejected by product validation after the merge.
type ProductPatchRequest struct {
	Modele           Nullable[string] `json:"modele"`
	Marque           Nullable[string] `json:"marque"`
	Prix             Nullable[int]    `json:"prix"`
	Description      Nullable[string] `json:"description"`
	Stock            Nullable[int]    `json:"stock"`
	RAM              Nullable[int]    `json:"ram"`
	CapaciteStockage Nullable[string] `json:"capaciteStockage"`
}

// Apply merges the present keys into attrs.
func (r ProductPatchRequest) Apply(attrs *domain.ProductAttributes) {
	r.Modele.applyTo(&attrs.Modele)
	r.Marque.applyTo(&attrs.Marque)
	r.Prix.applyTo(&attrs.Prix)
	r.Description.applyTo(&attrs.Description)
	r.Stock.applyTo(&attrs.Stock)
	r.RAM.applyTo(&attrs.RAM)
	r.CapaciteStockage.applyTo(&attrs.CapaciteStockage)
}

// CreateUserRequest defines the payload for POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// TokenRequest defines the payload for POST /api/auth/token.
type TokenRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by POST /api/auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`

	ClientID int64 `json:"client_id"`
}

// ProductResponse represents the response data for a product.
type ProductResponse struct {
	ID               int64   `json:"id"`
	Modele           *string `json:"modele"`
	Marque           *string `json:"marque"`
	Prix             *int    `json:"prix"`
	Description      *string `json:"description"`
	Stock            *int    `json:"stock"`
	RAM              *int    `json:"ram"`
	CapaciteStockage *string `json:"capaciteStockage"`
}

// UserResponse represents the response data for a user. The password hash
// is never part of it.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	ClientID int64  `json:"client_id"`
}

// ClientResponse represents a client profile.
type ClientResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// ListResponse is the body of every paginated list endpoint.
type ListResponse struct {
	Items       []*hateoas.Envelope `json:"items"`
	Total       int                 `json:"total"`
	CurrentPage int                 `json:"current_page"`
	TotalPages  int                 `json:"total_pages"`
	Links       hateoas.Links       `json:"links"`
}

func productToResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Modele:           p.Modele,
		Marque:           p.Marque,
		Prix:             p.Prix,
		Description:      p.Description,
		Stock:            p.Stock,
		RAM:              p.RAM,
		CapaciteStockage: p.CapaciteStockage,
	}
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		ClientID: u.ClientID,
	}
}

func clientToResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:       c.ID,
		Username: c.Username,
		Email:    c.Email,
		Address:  c.Address,
	}
}

func tokenToResponse(t *service.Token) TokenResponse {
	return TokenResponse{
		AccessToken: t.AccessToken,
		ExpiresAt:   t.ExpiresAt.UTC().Format(time.RFC3339),
		ClientID:    t.ClientID,
	}
}

// listResponse converts page into response DTOs, wraps each one with its
// own links and adds the navigation links of the list route.
func listResponse[T any, R any](
	linker *hateoas.Linker,
	page pagination.Page[T],
	limit int,
	toResponse func(T) R,
	relationsFor func(R) hateoas.Relations,
	route string,
	params hateoas.Params,
) (*ListResponse, error) {
	converted := pagination.Map(page, toResponse)

	items, err := hateoas.WrapItems(linker, converted.Items, relationsFor)
	if err != nil {
		return nil, err
	}

	links, err := linker.PageLinks(route, params, page.CurrentPage, page.TotalPages, limit)
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Items:       items,
		Total:       converted.TotalCount,
		CurrentPage: converted.CurrentPage,
		TotalPages:  converted.TotalPages,
		Links:       links,
	}, nil
}
