package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/repositories"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/persistence/database"
)

var _ repositories.ComponentRepository = (*ComponentRepository)(nil)

func newTestRepository(t *testing.T) (*ComponentRepository, *stores.ComponentStore) {
	t.Helper()
	logger := logging.NewNopLogger()
	db, err := database.NewConnection(database.Options{SQLitePath: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewTableCreator().CreateSchema(db.DB))

	cache := stores.NewComponentStore(nil)
	return NewComponentRepository(db.DB, cache, logger), cache
}

func sampleComponent(id, pageID string, position int) *component.Component {
	return &component.Component{
		ID:       id,
		Type:     component.TypeButton,
		Name:     "Button " + id,
		PageID:   pageID,
		Position: position,
		Props:    component.Attributes{"text": "Go", "fullWidth": true},
		Styles: component.Attributes{
			"backgroundColor": "#fff",
			"padding":         map[string]any{"top": 10, "left": 4},
		},
		Responsive: map[component.Breakpoint]component.Attributes{
			component.BreakpointMobile: {"hidden": true},
		},
		CSSClasses: "btn",
		Created:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStoreAndFindByIDFromDatabase(t *testing.T) {
	repo, cache := newTestRepository(t)
	require.NoError(t, repo.Store(sampleComponent("c1", "home", 0)))
	cache.InvalidateAll()

	got, err := repo.FindByID("c1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, component.TypeButton, got.Type)
	assert.Equal(t, "Go", got.Props["text"])
	assert.Equal(t, true, got.Props["fullWidth"])
	assert.Equal(t, 10, component.SpacingValue(got, component.SpacingPadding, component.EdgeTop))
	assert.Equal(t, 4, component.SpacingValue(got, component.SpacingPadding, component.EdgeLeft))
	assert.Equal(t, 16, component.SpacingValue(got, component.SpacingPadding, component.EdgeRight))
	assert.Equal(t, true, got.Responsive[component.BreakpointMobile]["hidden"])
	assert.Equal(t, "btn", got.CSSClasses)
	assert.True(t, got.Created.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.Nil(t, got.Changed)
}

func TestFindByIDMissing(t *testing.T) {
	repo, _ := newTestRepository(t)

	got, err := repo.FindByID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindByPageOrderAndNextPosition(t *testing.T) {
	repo, _ := newTestRepository(t)

	next, err := repo.NextPosition("home")
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	require.NoError(t, repo.Store(sampleComponent("b", "home", 1)))
	require.NoError(t, repo.Store(sampleComponent("a", "home", 0)))
	require.NoError(t, repo.Store(sampleComponent("x", "about", 0)))

	next, err = repo.NextPosition("home")
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	page, err := repo.FindByPage("home")
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a", page[0].ID)
	assert.Equal(t, "b", page[1].ID)

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateRefreshesCacheAndIndexes(t *testing.T) {
	repo, _ := newTestRepository(t)
	c := sampleComponent("c1", "home", 0)
	require.NoError(t, repo.Store(c))

	_, err := repo.FindByPage("home")
	require.NoError(t, err)

	changed := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	updated := component.Clone(c)
	updated.Props["text"] = "Stop"
	updated.PageID = "about"
	updated.Changed = &changed
	require.NoError(t, repo.Update(updated))

	home, err := repo.FindByPage("home")
	require.NoError(t, err)
	assert.Empty(t, home)

	about, err := repo.FindByPage("about")
	require.NoError(t, err)
	require.Len(t, about, 1)
	assert.Equal(t, "Stop", about[0].Props["text"])

	assert.Error(t, repo.Update(sampleComponent("ghost", "home", 0)))
}

func TestDeleteInvalidates(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Store(sampleComponent("c1", "home", 0)))
	_, err := repo.FindByPage("home")
	require.NoError(t, err)

	require.NoError(t, repo.Delete("c1"))

	got, err := repo.FindByID("c1")
	require.NoError(t, err)
	assert.Nil(t, got)

	page, err := repo.FindByPage("home")
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestNilBucketsStoreAsEmptyObjects(t *testing.T) {
	repo, cache := newTestRepository(t)
	require.NoError(t, repo.Store(&component.Component{ID: "bare", Type: "unknown-widget", Name: "bare"}))
	cache.InvalidateAll()

	got, err := repo.FindByID("bare")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, component.Type("unknown-widget"), got.Type)
	assert.Empty(t, got.Props)
	assert.Empty(t, got.Responsive)
}
