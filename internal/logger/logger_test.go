package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, LevelDebug, ParseLevel(" Debug "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestSlogLogger_WritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(Config{Level: LevelInfo, Format: "json", Output: &buf})

	log.Debug("hidden")
	log.Info("computed insights", Int("window_days", 30))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "computed insights", entry["msg"])
	assert.EqualValues(t, 30, entry["window_days"])
}

func TestCtx_AddsContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewSlogLogger(Config{Level: LevelDebug, Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), base)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithClientIP(ctx, "10.0.0.1")
	ctx = WithOperation(ctx, "focus")

	Ctx(ctx).Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "10.0.0.1", entry["client_ip"])
	assert.Equal(t, "focus", entry["operation"])
}

func TestWithRequestID_GeneratesWhenEmpty(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	assert.Len(t, RequestIDFromContext(ctx), 36)
}

func TestCtx_AddsCategoryAndDomainFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewSlogLogger(Config{Level: LevelDebug, Format: "json", Component: "cli", Output: &buf})

	ctx := WithLogger(context.Background(), base)
	ctx = WithCategory(WithOperation(ctx, "import"), "mood")

	Ctx(ctx).Warn("import aborted", Backend("sqlite"), WindowDays(30))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "cli", entry["component"])
	assert.Equal(t, "import", entry["operation"])
	assert.Equal(t, "mood", entry["category"])
	assert.Equal(t, "sqlite", entry["backend"])
	assert.EqualValues(t, 30, entry["window_days"])
	assert.NotContains(t, entry, "request_id")
}

func TestSlogLogger_DurationsInMilliseconds(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(Config{Level: LevelInfo, Format: "json", Output: &buf})

	log.Info("request completed", Duration("latency", 1500*time.Microsecond))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.InDelta(t, 1.5, entry["latency_ms"], 1e-9)
	assert.NotContains(t, entry, "latency")
}

func TestSlogLogger_Enabled(t *testing.T) {
	log := NewSlogLogger(Config{Level: LevelWarn, Output: io.Discard})
	assert.False(t, log.Enabled(LevelInfo))
	assert.True(t, log.Enabled(LevelWarn))
	assert.True(t, log.Enabled(LevelError))
	assert.False(t, Discard().Enabled(LevelDebug))
}
