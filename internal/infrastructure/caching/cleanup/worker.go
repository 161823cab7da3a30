// Package cleanup provides the background cache and session expiry worker
package cleanup

import (
	"context"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
)

// Result counts what one cleanup pass removed
type Result struct {
	CacheEntries   int
	EditorSessions []string
	Duration       time.Duration
}

// Worker handles background cache cleanup operations
type Worker struct {
	components interfaces.ComponentCache
	sessions   interfaces.EditorSessionCache
	logger     *logging.ChanneledLogger
	reporter   *Reporter
	config     *Config
	onExpired  func(sessionID string)
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(components interfaces.ComponentCache, sessions interfaces.EditorSessionCache, logger *logging.ChanneledLogger, config *Config) *Worker {
	return &Worker{
		components: components,
		sessions:   sessions,
		logger:     logger,
		reporter:   NewReporter(nil),
		config:     config,
	}
}

// OnSessionExpired registers a callback run for every purged editor session.
func (w *Worker) OnSessionExpired(fn func(sessionID string)) {
	w.onExpired = fn
}

// Start begins the cleanup worker routine, using the configured interval
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started",
		"interval", w.config.CleanupInterval,
		"verbose", w.config.VerboseReporting,
		"contentTTL", w.config.ContentCacheTTL,
		"sessionTTL", w.config.EditorSessionTTL)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce performs a single cleanup pass
func (w *Worker) RunOnce() Result {
	start := time.Now()
	if w.config.VerboseReporting {
		w.reporter.LogStage("PERIODIC CACHE CLEANUP")
		w.reporter.Report(w.components.Stats(), w.sessions.Count())
	}

	res := Result{
		CacheEntries:   w.components.PurgeExpired(w.config.ContentCacheTTL),
		EditorSessions: w.sessions.PurgeIdle(w.config.EditorSessionTTL),
	}
	if w.onExpired != nil {
		for _, id := range res.EditorSessions {
			w.onExpired(id)
		}
	}
	res.Duration = time.Since(start)

	total := res.CacheEntries + len(res.EditorSessions)
	if total > 0 {
		w.logger.Cache().Info("Cache cleanup finished",
			"cacheEntries", res.CacheEntries,
			"editorSessions", len(res.EditorSessions),
			"duration", res.Duration)
		if w.config.VerboseReporting {
			w.reporter.LogSuccess("Cache cleanup finished: %d items cleaned in %v", total, res.Duration)
		}
	} else if w.config.VerboseReporting {
		w.reporter.LogInfo("Cache cleanup completed - no expired items found (%v)", res.Duration)
	}
	return res
}
