package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/bilemo-api/internal/api"
	apiMiddleware "github.com/phrazzld/bilemo-api/internal/api/middleware"
	"github.com/phrazzld/bilemo-api/internal/platform/metrics"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	return newRouter(app.logger, app.db, app.metrics, app.apiDependencies())
}

func newRouter(logger *slog.Logger, db *sql.DB, m *metrics.Metrics, deps api.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(logger))
	r.Use(m.InstrumentHandler)

	api.RegisterRoutes(r, deps)

	r.Get("/health", healthHandler(logger, db))
	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

// healthHandler answers OK while the database answers a ping.
func healthHandler(logger *slog.Logger, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Error("Health check failed", slog.String("error", err.Error()))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("Failed to write health check response", slog.String("error", err.Error()))
		}
	}
}
