package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/security"
)

type memRepository struct {
	mu        sync.Mutex
	items     map[string]*component.Component
	findDelay time.Duration
}

func newMemRepository() *memRepository {
	return &memRepository{items: map[string]*component.Component{}}
}

func (r *memRepository) FindByID(id string) (*component.Component, error) {
	time.Sleep(r.findDelay)
	r.mu.Lock()
	defer r.mu.Unlock()
	return component.Clone(r.items[id]), nil
}

func (r *memRepository) FindByPage(pageID string) ([]*component.Component, error) {
	all, _ := r.FindAll()
	var out []*component.Component
	for _, c := range all {
		if c.PageID == pageID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memRepository) FindAll() ([]*component.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*component.Component
	for _, c := range r.items {
		out = append(out, component.Clone(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PageID != out[j].PageID {
			return out[i].PageID < out[j].PageID
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *memRepository) NextPosition(pageID string) (int, error) {
	comps, _ := r.FindByPage(pageID)
	return len(comps), nil
}

func (r *memRepository) Store(c *component.Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = component.Clone(c)
	return nil
}

func (r *memRepository) Update(c *component.Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return errors.New("no such row")
	}
	r.items[c.ID] = component.Clone(c)
	return nil
}

func (r *memRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type recordingPublisher struct {
	mu      sync.Mutex
	updated []component.Patch
	deleted []string
}

func (p *recordingPublisher) ComponentUpdated(_ *component.Component, patch component.Patch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated = append(p.updated, patch)
}

func (p *recordingPublisher) ComponentDeleted(id, _ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, id)
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type fixture struct {
	repo       *memRepository
	publisher  *recordingPublisher
	components *ComponentService
	inspector  *InspectorService
	sessions   *stores.EditorSessionStore
	clipboard  *fakeClipboard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logging.NewNopLogger()
	tracker := performance.NewTracker(logger, nil)
	f := &fixture{
		repo:      newMemRepository(),
		publisher: &recordingPublisher{},
		sessions:  stores.NewEditorSessionStore(nil),
		clipboard: &fakeClipboard{},
	}
	f.components = NewComponentService(f.repo, f.publisher, logger, tracker)
	f.inspector = NewInspectorService(f.components, f.sessions, f.clipboard, logger, tracker)
	return f
}

func (f *fixture) create(t *testing.T, typ component.Type, pageID string) *component.Component {
	t.Helper()
	c, err := f.components.Create(&component.Component{Type: typ, PageID: pageID})
	require.NoError(t, err)
	return c
}

func TestComponentService_Create(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, component.TypeHero, "home")
	second := f.create(t, component.TypeButton, "home")
	other := f.create(t, component.TypeImage, "about")

	assert.True(t, security.IsULID(first.ID))
	assert.Equal(t, "hero", first.Name)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, 0, other.Position)
	assert.False(t, first.Created.IsZero())
	assert.Nil(t, first.Changed)

	page, err := f.components.List("home")
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, first.ID, page[0].ID)

	empty, err := f.components.List("nowhere")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestComponentService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.components.Create(&component.Component{})
	assert.Error(t, err)

	c, err := f.components.Create(&component.Component{ID: "fixed", Type: component.TypeGrid, Name: "Features"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", c.ID)
	assert.Equal(t, "Features", c.Name)

	_, err = f.components.Create(&component.Component{ID: "fixed", Type: component.TypeGrid})
	assert.True(t, errors.Is(err, ErrComponentExists))
}

func TestComponentService_ApplyPatch(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeButton, "home")

	updated, err := f.components.ApplyPatch(c.ID, component.SetProp(c, component.PropText, "Buy"))
	require.NoError(t, err)
	assert.Equal(t, "Buy", updated.Props["text"])
	require.NotNil(t, updated.Changed)
	assert.WithinDuration(t, time.Now(), *updated.Changed, time.Minute)

	stored, err := f.components.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy", stored.Props["text"])
	require.Len(t, f.publisher.updated, 1)

	_, err = f.components.ApplyPatch(c.ID, component.Patch{})
	require.NoError(t, err)
	assert.Len(t, f.publisher.updated, 1)

	_, err = f.components.ApplyPatch("missing", component.SetProp(c, component.PropText, "x"))
	assert.True(t, errors.Is(err, ErrComponentNotFound))
}

func TestComponentService_Delete(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeHeading, "home")

	require.NoError(t, f.components.Delete(c.ID))
	assert.Equal(t, []string{c.ID}, f.publisher.deleted)

	_, err := f.components.Get(c.ID)
	assert.True(t, errors.Is(err, ErrComponentNotFound))
	assert.True(t, errors.Is(f.components.Delete(c.ID), ErrComponentNotFound))
}

func TestInspectorService_OpenAndTabs(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeHero, "home")

	view, err := f.inspector.Open(c.ID, "editor")
	require.NoError(t, err)
	assert.Equal(t, inspector.TabProperties, view.ActiveTab)
	assert.Equal(t, inspector.Tabs, view.Tabs)
	assert.False(t, view.Panel.IsEmpty())
	assert.Equal(t, 1, f.inspector.OpenSessions())

	view, err = f.inspector.SelectTab(view.SessionID, inspector.TabStyles)
	require.NoError(t, err)
	assert.Equal(t, inspector.TabStyles, view.Panel.Tab)

	again, err := f.inspector.View(view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, inspector.TabStyles, again.ActiveTab)

	_, err = f.inspector.SelectTab(view.SessionID, "seo")
	assert.True(t, errors.Is(err, inspector.ErrUnknownTab))

	_, err = f.inspector.Open("missing", "editor")
	assert.True(t, errors.Is(err, ErrComponentNotFound))
	_, err = f.inspector.View("missing")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestInspectorService_EditPersistsThroughStore(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeHeading, "home")
	view, err := f.inspector.Open(c.ID, "editor")
	require.NoError(t, err)

	res, err := f.inspector.Edit(view.SessionID, inspector.TabProperties, "text", "Hello")
	require.NoError(t, err)
	assert.Equal(t, component.Attributes{"text": "Hello"}, res.Patch.Props)

	res, err = f.inspector.Edit(view.SessionID, inspector.TabProperties, "level", "h1")
	require.NoError(t, err)
	assert.Equal(t, component.Attributes{"text": "Hello", "level": "h1"}, res.View.Component.Props)

	res, err = f.inspector.Edit(view.SessionID, inspector.TabStyles, "padding.left", "24")
	require.NoError(t, err)
	assert.Equal(t, 24, component.SpacingValue(res.View.Component, component.SpacingPadding, component.EdgeLeft))

	stored, err := f.components.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "h1", stored.Props["level"])
	assert.Len(t, f.publisher.updated, 3)
}

func TestInspectorService_ConcurrentEditsKeepSiblings(t *testing.T) {
	f := newFixture(t)
	f.repo.findDelay = 2 * time.Millisecond

	for run := 0; run < 10; run++ {
		c := f.create(t, component.TypeHero, "home")
		first, err := f.inspector.Open(c.ID, "alice")
		require.NoError(t, err)
		second, err := f.inspector.Open(c.ID, "bob")
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		edit := func(sessionID, field, value string) {
			defer wg.Done()
			_, err := f.inspector.Edit(sessionID, inspector.TabProperties, field, value)
			errs <- err
		}
		wg.Add(2)
		go edit(first.SessionID, "title", "T")
		go edit(second.SessionID, "subtitle", "S")
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		stored, err := f.components.Get(c.ID)
		require.NoError(t, err)
		assert.Equal(t, "T", stored.Props["title"], "run %d", run)
		assert.Equal(t, "S", stored.Props["subtitle"], "run %d", run)
	}
}

func TestComponentService_ConcurrentPatchesSerialise(t *testing.T) {
	f := newFixture(t)
	f.repo.findDelay = time.Millisecond
	c := f.create(t, component.TypeHero, "home")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("name-%d", i)
			_, err := f.components.ApplyPatch(c.ID, component.Patch{Name: &name})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Len(t, f.publisher.updated, 8)
}

func TestInspectorService_EditRejectionsStoreNothing(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeButton, "home")
	view, err := f.inspector.Open(c.ID, "editor")
	require.NoError(t, err)

	_, err = f.inspector.Edit(view.SessionID, inspector.TabProperties, "variant", "neon")
	assert.True(t, errors.Is(err, inspector.ErrOptionNotAllowed))

	_, err = f.inspector.Edit(view.SessionID, inspector.TabProperties, "nope", "x")
	assert.True(t, errors.Is(err, inspector.ErrUnknownField))

	assert.Empty(t, f.publisher.updated)
}

func TestInspectorService_Rename(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeImage, "home")
	view, err := f.inspector.Open(c.ID, "editor")
	require.NoError(t, err)

	view, err = f.inspector.Rename(view.SessionID, "Team photo")
	require.NoError(t, err)
	assert.Equal(t, "Team photo", view.Component.Name)
}

func TestInspectorService_Export(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeTestimonial, "home")
	view, err := f.inspector.Open(c.ID, "editor")
	require.NoError(t, err)

	res, err := f.inspector.Export(view.SessionID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, res.Payload, f.clipboard.text)

	f.clipboard.err = errors.New("no display")
	res, err = f.inspector.Export(view.SessionID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Payload)
}

func TestInspectorService_DeleteClosesSessions(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeForm, "home")
	first, err := f.inspector.Open(c.ID, "a")
	require.NoError(t, err)
	second, err := f.inspector.Open(c.ID, "b")
	require.NoError(t, err)

	require.NoError(t, f.inspector.DeleteComponent(first.SessionID))

	assert.Equal(t, []string{c.ID}, f.publisher.deleted)
	assert.Zero(t, f.inspector.OpenSessions())
	_, err = f.inspector.View(second.SessionID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestInspectorService_Close(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeParagraph, "home")
	view, err := f.inspector.Open(c.ID, "editor")
	require.NoError(t, err)

	require.NoError(t, f.inspector.Close(view.SessionID))
	assert.True(t, errors.Is(f.inspector.Close(view.SessionID), ErrSessionNotFound))
}

func TestInspectorService_SessionOnDeletedComponent(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, component.TypeGrid, "home")
	view, err := f.inspector.Open(c.ID, "editor")
	require.NoError(t, err)

	require.NoError(t, f.repo.Delete(c.ID))

	_, err = f.inspector.View(view.SessionID)
	assert.True(t, errors.Is(err, ErrComponentNotFound))
	assert.Zero(t, f.inspector.OpenSessions())
}

func TestAuthService(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		stored   string
		password string
		ok       bool
	}{
		{"bcrypt match", hashed, "s3cret", true},
		{"bcrypt mismatch", hashed, "wrong", false},
		{"plaintext match", "plain", "plain", true},
		{"disabled", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewAuthService(AuthConfig{EditorPassword: tt.stored, JWTSecret: "secret", TokenTTL: time.Hour}, logging.NewNopLogger())
			res, err := auth.Authenticate(tt.password)
			if !tt.ok {
				assert.True(t, errors.Is(err, ErrInvalidCredentials))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, security.RoleEditor, res.Role)

			claims, err := auth.ValidateToken(res.Token)
			require.NoError(t, err)
			assert.Equal(t, security.TokenType, claims.Type)
		})
	}
}

func TestAuthService_RejectsForeignToken(t *testing.T) {
	auth := NewAuthService(AuthConfig{EditorPassword: "x", JWTSecret: "secret", TokenTTL: time.Hour}, logging.NewNopLogger())
	token, _, err := security.GenerateEditorToken("editor", "other-secret", time.Hour)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, err = auth.ValidateToken("")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthService_EphemeralSecret(t *testing.T) {
	auth := NewAuthService(AuthConfig{EditorPassword: "pw", TokenTTL: time.Hour}, logging.NewNopLogger())
	res, err := auth.Authenticate("pw")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, security.RoleEditor, claims.Role)

	other := NewAuthService(AuthConfig{EditorPassword: "pw", TokenTTL: time.Hour}, logging.NewNopLogger())
	_, err = other.ValidateToken(res.Token)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}
