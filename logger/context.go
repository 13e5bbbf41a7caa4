package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

// Logger context keys
const (
	LoggerKey ContextKey = "logger"
)

// FromContext retrieves the logger from the context
// If no logger is found, it returns the default logger
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// WithRequestID adds a request ID to the logger in the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	logger := FromContext(ctx)
	loggerWithRequestID := logger.With("request_id", requestID)
	return WithLogger(ctx, loggerWithRequestID)
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStderrLogger builds the process logger used outside of HTTP requests.
func NewStderrLogger(level string, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if asJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
