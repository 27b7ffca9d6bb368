package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type of context keys owned by this package.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID (32 hex characters)
	TraceIDLength = 16
)

// SetTraceID adds a new trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// generateTraceID returns 32 random hex characters. If crypto/rand fails it
// falls back to a dashless UUIDv4, which has the same length.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate secure random trace ID",
			slog.String("error", err.Error()),
			slog.String("fallback", "uuid"))
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(b)
}
