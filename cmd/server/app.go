package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bilemo-api/internal/api"
	"github.com/phrazzld/bilemo-api/internal/config"
	"github.com/phrazzld/bilemo-api/internal/hateoas"
	"github.com/phrazzld/bilemo-api/internal/platform/cache"
	"github.com/phrazzld/bilemo-api/internal/platform/metrics"
	"github.com/phrazzld/bilemo-api/internal/platform/postgres"
	"github.com/phrazzld/bilemo-api/internal/service"
	"github.com/phrazzld/bilemo-api/internal/service/auth"
	"github.com/phrazzld/bilemo-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger  *slog.Logger
	db      *sql.DB
	metrics *metrics.Metrics

	// Stores (using interfaces for proper abstraction)
	productStore store.ProductStore
	userStore    store.UserStore
	clientStore  store.ClientStore

	productCache cache.ProductCache
	closeCache   func() error

	// Service interfaces
	jwtService     auth.JWTService
	productService service.ProductService
	userService    service.UserService
	clientService  service.ClientService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	passwords := auth.NewBcrypt(cfg.Auth.BCryptCost)

	app.productStore = postgres.NewPostgresProductStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.clientStore = postgres.NewPostgresClientStore(db, logger)

	app.productCache, app.closeCache, err = cache.New(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize product cache: %w", err)
	}
	if rc, ok := app.productCache.(*cache.RedisProductCache); ok {
		app.metrics.RegisterCacheStats(rc.Stats)
	}

	app.productService, err = service.NewProductService(app.productStore, app.productCache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}
	app.userService, err = service.NewUserService(app.userStore, db, passwords, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	app.clientService, err = service.NewClientService(app.clientStore, app.jwtService, passwords, passwords, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// apiDependencies collects what the API routes are built from.
func (app *application) apiDependencies() api.Dependencies {
	return api.Dependencies{
		Products:     app.productService,
		Users:        app.userService,
		Clients:      app.clientService,
		JWT:          app.jwtService,
		Linker:       hateoas.NewLinker(api.Routes, app.config.Server.PublicBaseURL),
		DefaultLimit: app.config.Pagination.DefaultLimit,
		CacheMaxAge:  app.config.Server.CacheMaxAgeSeconds,
		Logger:       app.logger,
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.closeCache != nil {
		if err := app.closeCache(); err != nil {
			app.logger.Error("Error closing cache connection", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
