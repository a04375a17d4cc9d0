package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type ctxKey string

const ctxKeyMissionID ctxKey = "mission_id"

// NewLogger builds a slog logger. format is "json" or "text"; level is one of
// debug, info, warn, error (unknown values fall back to warn).
func NewLogger(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// WithMissionID stores a mission id in the context.
func WithMissionID(ctx context.Context, missionID string) context.Context {
	return context.WithValue(ctx, ctxKeyMissionID, missionID)
}

// LoggerFromContext adds mission_id if present.
func LoggerFromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	id, _ := ctx.Value(ctxKeyMissionID).(string)
	if id == "" {
		return base
	}
	return base.With("mission_id", id)
}
