package cleanup

import (
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/pkg/config"
)

// Config holds cleanup worker configuration, sourced from the central config package.
type Config struct {
	CleanupInterval  time.Duration
	VerboseReporting bool
	ContentCacheTTL  time.Duration
	EditorSessionTTL time.Duration
}

// NewConfig creates a new cleanup configuration by reading values
// from the already-initialized variables in the centralized /pkg/config package.
func NewConfig() *Config {
	return &Config{
		CleanupInterval:  config.CleanupInterval,
		VerboseReporting: config.CleanupVerbose,
		ContentCacheTTL:  config.ContentCacheTTL,
		EditorSessionTTL: config.EditorSessionTTL,
	}
}
