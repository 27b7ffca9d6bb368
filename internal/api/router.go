package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	apiMiddleware "github.com/phrazzld/bilemo-api/internal/api/middleware"
	"github.com/phrazzld/bilemo-api/internal/authz"
	"github.com/phrazzld/bilemo-api/internal/hateoas"
	"github.com/phrazzld/bilemo-api/internal/service"
	"github.com/phrazzld/bilemo-api/internal/service/auth"
)

// Dependencies are the collaborators the API routes are built from.
type Dependencies struct {
	Products service.ProductService
	Users    service.UserService
	Clients  service.ClientService
	JWT      auth.JWTService

	// Linker resolves HATEOAS links. Nil means links are built from Routes
	// against each request's own host.
	Linker *hateoas.Linker

	DefaultLimit int

	// CacheMaxAge is the max-age in seconds sent on successful reads:
	// public for products, private for client-scoped routes.
	// Zero disables the header.
	CacheMaxAge int

	Logger *slog.Logger
}

// RegisterRoutes mounts every /api route on r.
func RegisterRoutes(r chi.Router, deps Dependencies) {
	linker := deps.Linker
	if linker == nil {
		linker = hateoas.NewLinker(Routes, "")
	}

	productHandler := NewProductHandler(deps.Products, linker, deps.DefaultLimit, deps.Logger)
	userHandler := NewUserHandler(deps.Users, linker, deps.DefaultLimit, deps.Logger)
	clientHandler := NewClientHandler(deps.Clients, deps.Users, linker, deps.DefaultLimit, deps.Logger)
	authHandler := NewAuthHandler(deps.Clients, deps.Logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.JWT, deps.Clients)
	guard := authz.NewMiddleware(HandleAPIError)
	cacheable := apiMiddleware.CacheControl(deps.CacheMaxAge)
	privatelyCacheable := apiMiddleware.PrivateCacheControl(deps.CacheMaxAge)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Authentication endpoints (public)
		r.Post("/auth/token", authHandler.IssueToken)

		// Product endpoints (public)
		r.Route("/products", func(r chi.Router) {
			r.With(cacheable).Get("/", productHandler.ListProducts)
			r.Post("/", productHandler.CreateProduct)
			r.With(cacheable).Get("/{id}", productHandler.GetProduct)
			r.Put("/{id}", productHandler.ReplaceProduct)
			r.Patch("/{id}", productHandler.PatchProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})

		// User endpoints (scoped to the owning client)
		r.Route("/users", func(r chi.Router) {
			r.With(guard.RequireAdmin, privatelyCacheable).Get("/", userHandler.ListUsers)
			r.With(guard.RequirePrincipal).Post("/", userHandler.CreateUser)

			r.Group(func(r chi.Router) {
				r.Use(guard.RequireOwner(userHandler.ResolveUser))
				r.With(privatelyCacheable).Get("/{id}", userHandler.GetUser)
				r.Delete("/{id}", userHandler.DeleteUser)
			})
		})

		// Client endpoints
		r.With(guard.RequireOwner(clientHandler.ResolveClientID), privatelyCacheable).
			Get("/client/{clientId}", clientHandler.ListClientUsers)
		r.With(guard.RequireOwner(clientHandler.ResolveClient), privatelyCacheable).
			Get("/clients/{clientId}", clientHandler.GetClient)
	})
}
