package performance

import (
	"log/slog"
	"sync"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
)

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	SlowThreshold time.Duration `json:"slowThreshold"`
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{SlowThreshold: 500 * time.Millisecond}
}

// Tracker hands out markers and keeps per-operation statistics
type Tracker struct {
	stats   map[string]*OperationStats
	mu      sync.RWMutex
	started time.Time
	config  *TrackerConfig
	logger  *logging.ChanneledLogger
}

// NewTracker creates a new performance tracker. logger may be nil.
func NewTracker(logger *logging.ChanneledLogger, config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}
	return &Tracker{
		stats:   make(map[string]*OperationStats),
		started: time.Now(),
		config:  config,
		logger:  logger,
	}
}

// StartOperation creates a new performance marker for an operation
func (t *Tracker) StartOperation(operation, subject string) *Marker {
	return &Marker{
		Operation: operation,
		Subject:   subject,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true,
		tracker:   t,
	}
}

func (t *Tracker) record(m *Marker) {
	slow := m.Duration > t.config.SlowThreshold

	t.mu.Lock()
	s, ok := t.stats[m.Operation]
	if !ok {
		s = &OperationStats{}
		t.stats[m.Operation] = s
	}
	s.Count++
	s.Total += m.Duration
	if m.Duration > s.Max {
		s.Max = m.Duration
	}
	if slow {
		s.SlowCount++
	}
	if !m.Success {
		s.Failures++
		s.LastFailure = m.Error
	}
	s.LastSeenAt = m.EndTime
	t.mu.Unlock()

	if t.logger == nil {
		return
	}
	attrs := []any{
		slog.String("operation", m.Operation),
		slog.String("subject", m.Subject),
		slog.Duration("duration", m.Duration),
		slog.Bool("success", m.Success),
	}
	if m.Error != "" {
		attrs = append(attrs, slog.String("error", m.Error))
	}
	if slow {
		t.logger.Perf().Warn("Operation exceeded threshold", append(attrs, slog.Duration("threshold", t.config.SlowThreshold))...)
		return
	}
	t.logger.Perf().Debug("Operation completed", attrs...)
}

// Stats returns a copy of the statistics of every recorded operation
func (t *Tracker) Stats() map[string]OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]OperationStats, len(t.stats))
	for op, s := range t.stats {
		out[op] = *s
	}
	return out
}

// Uptime reports how long the tracker has been running
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
