package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	Load()

	assert.Equal(t, "8080", Port)
	assert.Equal(t, 24*time.Hour, ContentCacheTTL)
	assert.Equal(t, 2*time.Hour, EditorSessionTTL)
	assert.Equal(t, "db/inspector.db", SQLitePath)
}

func TestLoadOverrides(t *testing.T) {
	t.Cleanup(Load)
	t.Setenv("PORT", "9090")
	t.Setenv("EDITOR_SESSION_TTL", "15m")
	t.Setenv("CLEANUP_VERBOSE", "true")
	t.Setenv("CANVAS_SEND_BUFFER", "not-a-number")

	Load()

	assert.Equal(t, "9090", Port)
	assert.Equal(t, 15*time.Minute, EditorSessionTTL)
	assert.True(t, CleanupVerbose)
	assert.Equal(t, 32, CanvasSendBuffer)
}
