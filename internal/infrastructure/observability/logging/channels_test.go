package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level slog.Level) (*ChanneledLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	l, err := NewChanneledLogger(&LoggerConfig{Output: buf, JSONFormat: true, DefaultLevel: level})
	require.NoError(t, err)
	return l, buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestChannelAttribute(t *testing.T) {
	l, buf := newBufferLogger(t, slog.LevelInfo)

	l.Inspector().Info("field edited")

	entry := lastEntry(t, buf)
	assert.Equal(t, "inspector", entry["channel"])
	assert.Equal(t, "field edited", entry["msg"])
}

func TestSetChannelLevel(t *testing.T) {
	l, buf := newBufferLogger(t, slog.LevelInfo)

	l.Cache().Debug("hidden")
	assert.Empty(t, buf.String())

	require.NoError(t, l.SetChannelLevel(ChannelCache, slog.LevelDebug))
	buf.Reset()
	l.Cache().Debug("visible")
	assert.Equal(t, "visible", lastEntry(t, buf)["msg"])

	assert.Equal(t, "DEBUG", l.GetChannelLevels()["cache"])
	assert.Equal(t, "INFO", l.GetChannelLevels()["content"])

	assert.Error(t, l.SetChannelLevel("nope", slog.LevelDebug))
}

func TestWithContextRequestID(t *testing.T) {
	l, buf := newBufferLogger(t, slog.LevelInfo)
	ctx := ContextWithRequestID(context.Background(), "req-123")

	l.WithContext(ChannelContent, ctx).Info("stored")

	assert.Equal(t, "req-123", lastEntry(t, buf)["requestId"])
}

func TestLogSlowQuerySanitises(t *testing.T) {
	l, buf := newBufferLogger(t, slog.LevelInfo)

	l.LogSlowQuery("SELECT *\n\tFROM components", 0)

	entry := lastEntry(t, buf)
	assert.Equal(t, "slow-query", entry["channel"])
	assert.Equal(t, "SELECT * FROM components", entry["query"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "********", sanitizeID("short"))
	assert.Equal(t, "01HX****WXYZ", sanitizeID("01HXABCDEFGWXYZ"))
}
