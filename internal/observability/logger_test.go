package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContextAddsMissionID(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&buf, "json", "info")

	ctx := WithMissionID(context.Background(), "m-42")
	LoggerFromContext(ctx, base).Info("day rolled over")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "m-42", rec["mission_id"])
	assert.Equal(t, "day rolled over", rec["msg"])

	assert.Same(t, base, LoggerFromContext(context.Background(), base))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(" info "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("loud"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "text", "warn")
	l.Info("hidden")
	assert.Zero(t, buf.Len())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
