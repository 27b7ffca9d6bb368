package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/bilemo-api/internal/config"
)

type contextKey struct{}

// Setup builds the application's JSON logger from the server configuration
// and installs it as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return New(os.Stdout, cfg.LogLevel), nil
}

// New creates a JSON logger writing to w at the given level and installs it
// as the slog default. Unknown levels fall back to info with a warning.
func New(w io.Writer, levelName string) *slog.Logger {
	level, ok := ParseLevel(levelName)
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", levelName,
			"default_level", "info")
	}
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a configured level name (case-insensitive) to a slog.Level.
// The boolean is false when the name is not recognised.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "fatal":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when
// the context carries none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	if fallback == nil {
		return slog.Default()
	}
	return fallback
}
