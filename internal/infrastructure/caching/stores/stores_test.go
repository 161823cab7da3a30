package stores

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
)

var (
	_ interfaces.ComponentCache     = (*ComponentStore)(nil)
	_ interfaces.EditorSessionCache = (*EditorSessionStore)(nil)
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestComponentStoreCopiesOnReadAndWrite(t *testing.T) {
	store := NewComponentStore(logging.NewNopLogger())
	c := &component.Component{ID: "c1", Type: component.TypeHero, Props: component.Attributes{"title": "Hi"}}

	store.SetComponent(c)
	c.Props["title"] = "mutated after set"

	got, ok := store.GetComponent("c1")
	require.True(t, ok)
	assert.Equal(t, "Hi", got.Props["title"])

	got.Props["title"] = "mutated after get"
	again, _ := store.GetComponent("c1")
	assert.Equal(t, "Hi", again.Props["title"])

	_, ok = store.GetComponent("missing")
	assert.False(t, ok)

	stats := store.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestComponentStoreIndexes(t *testing.T) {
	store := NewComponentStore(nil)

	store.SetPageComponentIDs("home", []string{"a", "b"})
	store.SetAllComponentIDs([]string{"a", "b", "c"})

	ids, ok := store.GetPageComponentIDs("home")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, ids)

	store.InvalidatePage("home")
	_, ok = store.GetPageComponentIDs("home")
	assert.False(t, ok)
	_, ok = store.GetAllComponentIDs()
	assert.False(t, ok)
}

func TestComponentStorePurgeExpired(t *testing.T) {
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewComponentStore(nil)
	store.now = clk.now

	store.SetComponent(&component.Component{ID: "old"})
	store.SetPageComponentIDs("p", []string{"old"})
	clk.t = clk.t.Add(2 * time.Hour)
	store.SetComponent(&component.Component{ID: "fresh"})

	removed := store.PurgeExpired(time.Hour)

	assert.Equal(t, 2, removed)
	_, ok := store.GetComponent("old")
	assert.False(t, ok)
	_, ok = store.GetComponent("fresh")
	assert.True(t, ok)
}

func TestEditorSessionStore(t *testing.T) {
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewEditorSessionStore(nil)
	store.now = clk.now

	store.SetSession(&types.EditorSession{ID: "s1", ComponentID: "c1", ActiveTab: "properties"})
	store.SetSession(&types.EditorSession{ID: "s2", ComponentID: "c1", ActiveTab: "styles"})
	store.SetSession(&types.EditorSession{ID: "s3", ComponentID: "c2"})

	got, ok := store.GetSession("s1")
	require.True(t, ok)
	assert.Equal(t, clk.t, got.Created)
	got.ActiveTab = "advanced"
	again, _ := store.GetSession("s1")
	assert.Equal(t, "properties", again.ActiveTab)

	ids := store.SessionsForComponent("c1")
	sort.Strings(ids)
	assert.Equal(t, []string{"s1", "s2"}, ids)

	clk.t = clk.t.Add(30 * time.Minute)
	assert.True(t, store.TouchSession("s2"))
	assert.False(t, store.TouchSession("nope"))

	clk.t = clk.t.Add(45 * time.Minute)
	purged := store.PurgeIdle(time.Hour)
	sort.Strings(purged)
	assert.Equal(t, []string{"s1", "s3"}, purged)
	assert.Equal(t, 1, store.Count())

	store.DeleteSession("s2")
	assert.Zero(t, store.Count())
}
