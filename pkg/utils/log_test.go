package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogHandler(t *testing.T) {
	t.Run("json respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(newLogHandler(&buf, HandlerTypeJSON, "warn"))
		logger.Info("dropped")
		assert.Empty(t, buf.String())

		logger.Warn("kept", "list", "tasks")
		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "kept", record["msg"])
		assert.Equal(t, "tasks", record["list"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(newLogHandler(&buf, HandlerTypeText, "DEBUG"))
		logger.Debug("visible")
		assert.Contains(t, buf.String(), "msg=visible")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		invariantsMetric.Reset()
		handler := newLogHandler(&bytes.Buffer{}, HandlerTypeText, "loud")
		assert.True(t, handler.Enabled(context.Background(), slog.LevelInfo))
		assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
		assert.Equal(t, 1, GetMetricValue("log", "unsupported_log_level"))
	})
}
