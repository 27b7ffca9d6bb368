package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// startHTTPServer serves router until ctx is cancelled (SIGINT/SIGTERM are
// wired into ctx by main) or the listener fails, then shuts down gracefully.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	srvCfg := app.config.Server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", srvCfg.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(srvCfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(srvCfg.WriteTimeoutSeconds) * time.Second,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", slog.Int("port", srvCfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", slog.String("error", err.Error()))
			serveErr <- err
			cancelServer()
		}
	}()

	<-serverCtx.Done()
	app.logger.Info("Shutting down server...")

	timeout := time.Duration(srvCfg.ShutdownTimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	app.cleanup()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	default:
	}
	if shutdownErr != nil {
		app.logger.Error("Server shutdown failed", slog.String("error", shutdownErr.Error()))
		return fmt.Errorf("server shutdown failed: %w", shutdownErr)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}
