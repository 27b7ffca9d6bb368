package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bilemo-api/internal/api/shared"
	"github.com/phrazzld/bilemo-api/internal/domain"
	"github.com/phrazzld/bilemo-api/internal/hateoas"
	"github.com/phrazzld/bilemo-api/internal/pagination"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/service"
)

// ProductHandler handles the product catalogue endpoints.
type ProductHandler struct {
	products     service.ProductService
	linker       *hateoas.Linker
	defaultLimit int
	logger       *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(
	products service.ProductService,
	linker *hateoas.Linker,
	defaultLimit int,
	logger *slog.Logger,
) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		products:     products,
		linker:       linker,
		defaultLimit: defaultLimit,
		logger:       logger.With(slog.String("handler", "product")),
	}
}

// ListProducts handles GET /api/products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r.URL.Query(), h.defaultLimit)

	page, err := h.products.List(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp, err := listResponse(h.linker.ForRequest(r), page, params.Limit,
		productToResponse, productItemRelations, RouteProductList, nil)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetProduct handles GET /api/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondProduct(w, r, http.StatusOK, product)
}

// CreateProduct handles POST /api/products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	product, err := h.products.Create(r.Context(), req.Attributes())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondProduct(w, r, http.StatusCreated, product)
}

// ReplaceProduct handles PUT /api/products/{id}. Every attribute is
// overwritten; keys missing from the body become null.
func (h *ProductHandler) ReplaceProduct(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req ProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	product, err := h.products.Replace(r.Context(), id, req.Attributes())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondProduct(w, r, http.StatusOK, product)
}

// PatchProduct handles PATCH /api/products/{id}.
func (h *ProductHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req ProductPatchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	product, err := h.products.Patch(r.Context(), id, req.Apply)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondProduct(w, r, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}

func (h *ProductHandler) respondProduct(w http.ResponseWriter, r *http.Request, status int, p *domain.Product) {
	resp := productToResponse(p)
	env, err := h.linker.ForRequest(r).AddLinks(resp, productRelations(resp))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if status == http.StatusCreated {
		w.Header().Set("Location", env.Links["self"])
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("product created via API",
			slog.Int64("product_id", p.ID))
	}
	shared.RespondWithJSON(w, r, status, env)
}
