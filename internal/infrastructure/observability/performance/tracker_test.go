package performance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
)

func TestTrackerAggregates(t *testing.T) {
	tracker := NewTracker(logging.NewNopLogger(), &TrackerConfig{SlowThreshold: time.Hour})

	ok := tracker.StartOperation("inspector:edit", "s1")
	ok.Complete()
	ok.Complete()

	failed := tracker.StartOperation("inspector:edit", "s2")
	failed.SetError(errors.New("boom"))
	failed.Complete()

	stats := tracker.Stats()
	require.Contains(t, stats, "inspector:edit")
	s := stats["inspector:edit"]
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 1, s.Failures)
	assert.Equal(t, "boom", s.LastFailure)
	assert.Zero(t, s.SlowCount)
	assert.False(t, failed.Success)
}

func TestTrackerSlowOperations(t *testing.T) {
	tracker := NewTracker(nil, &TrackerConfig{SlowThreshold: 0})

	m := tracker.StartOperation("component:patch", "c1")
	m.StartTime = m.StartTime.Add(-time.Millisecond)
	m.Complete()

	assert.Equal(t, 1, tracker.Stats()["component:patch"].SlowCount)
}

func TestOperationStatsAverage(t *testing.T) {
	assert.Zero(t, OperationStats{}.Average())
	assert.Equal(t, 2*time.Second, OperationStats{Count: 2, Total: 4 * time.Second}.Average())
}
