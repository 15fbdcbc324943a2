package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/review-board/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNew_JSONLoggerCarriesServiceAttrs(t *testing.T) {
	var buf bytes.Buffer
	obs := New(config.ObservabilityConfig{LogLevel: "info", LogFormat: "json", Environment: "staging"}, &buf)

	obs.Logger.Info("hello")
	obs.Logger.Debug("filtered out")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "staging", entry["env"])

	assert.NotNil(t, obs.Tracer)
	families, err := obs.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.ObservabilityConfig{LogLevel: "debug", LogFormat: "text"}, &buf)

	logger.Debug("visible", slog.String("k", "v"))

	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "k=v")
}
