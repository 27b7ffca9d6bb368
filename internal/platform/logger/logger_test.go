package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  slog.Level
		valid bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"fatal", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	var buf bytes.Buffer
	l := logger.New(&buf, "warn")

	l.Info("hidden")
	l.Warn("visible", "key", "value")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Same(t, l, slog.Default())
}

func TestNewWarnsOnUnknownLevel(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	var buf bytes.Buffer
	logger.New(&buf, "chatty")
	assert.Contains(t, buf.String(), "invalid log level configured")
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	ctx := logger.WithLogger(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
	assert.Same(t, l, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
}
