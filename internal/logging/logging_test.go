package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFor("debug"))
	assert.Equal(t, slog.LevelDebug, LevelFor(" Trace "))
	assert.Equal(t, slog.LevelInfo, LevelFor("verbose"))
	assert.Equal(t, slog.LevelInfo, LevelFor("medium"))
	assert.Equal(t, slog.LevelInfo, LevelFor("silent"))
	assert.Equal(t, slog.LevelWarn, LevelFor("warning"))
	assert.Equal(t, slog.LevelError, LevelFor("error"))
}

func TestNewHandlerJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(NewHandler(buf, slog.LevelInfo, true))

	logger.Info("entering", "operation", "InvokeVoid")
	logger.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "entering", line["msg"])
	assert.Equal(t, "InvokeVoid", line["operation"])
}

func TestNewHandlerTextLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	h := NewHandler(buf, slog.LevelDebug, false)

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	slog.New(h).Debug("calling service")
	assert.Contains(t, buf.String(), "msg=\"calling service\"")
}
