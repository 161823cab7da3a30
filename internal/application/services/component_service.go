// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/repositories"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/security"
)

// ComponentPublisher is notified after a component change is persisted.
type ComponentPublisher interface {
	ComponentUpdated(c *component.Component, patch component.Patch)
	ComponentDeleted(id, pageID string)
}

// ComponentService is the page-builder store. It owns every component and
// is the only place patches are applied.
type ComponentService struct {
	repo        repositories.ComponentRepository
	publisher   ComponentPublisher
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	now         func() time.Time

	// locks holds one *sync.Mutex per component ID. A patch carries whole
	// buckets, so building and applying it must not interleave with another
	// write to the same component.
	locks sync.Map
}

// NewComponentService creates a new component store service. publisher may
// be nil when nothing listens for changes.
func NewComponentService(repo repositories.ComponentRepository, publisher ComponentPublisher, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ComponentService {
	return &ComponentService{
		repo:        repo,
		publisher:   publisher,
		logger:      logger,
		perfTracker: perfTracker,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Get returns a component by ID (cache-first)
func (s *ComponentService) Get(id string) (*component.Component, error) {
	if id == "" {
		return nil, fmt.Errorf("component ID cannot be empty")
	}

	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get component %s: %w", id, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, id)
	}
	return c, nil
}

// List returns the components of one page in display order (cache-first)
func (s *ComponentService) List(pageID string) ([]*component.Component, error) {
	comps, err := s.repo.FindByPage(pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list components for page %s: %w", pageID, err)
	}
	if comps == nil {
		comps = []*component.Component{}
	}
	return comps, nil
}

// ListAll returns every stored component grouped by page.
func (s *ComponentService) ListAll() ([]*component.Component, error) {
	comps, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	if comps == nil {
		comps = []*component.Component{}
	}
	return comps, nil
}

// Create stores draft as a new component at the end of its page. A ULID is
// assigned when draft has no ID and the name defaults to the type.
func (s *ComponentService) Create(draft *component.Component) (*component.Component, error) {
	if draft == nil || strings.TrimSpace(string(draft.Type)) == "" {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidComponent)
	}

	marker := s.perfTracker.StartOperation("component:create", draft.PageID)
	defer marker.Complete()

	c := component.Clone(draft)
	if c.ID == "" {
		c.ID = security.GenerateULID()
	} else {
		existing, err := s.repo.FindByID(c.ID)
		if err != nil {
			marker.SetError(err)
			return nil, fmt.Errorf("failed to check component %s: %w", c.ID, err)
		}
		if existing != nil {
			marker.SetSuccess(false)
			return nil, fmt.Errorf("%w: %s", ErrComponentExists, c.ID)
		}
	}
	if c.Name == "" {
		c.Name = string(c.Type)
	}

	position, err := s.repo.NextPosition(c.PageID)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to place component: %w", err)
	}
	c.Position = position
	c.Created = s.now()
	c.Changed = nil

	if err := s.repo.Store(c); err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to create component: %w", err)
	}

	s.logger.Content().Info("Component created", "componentId", c.ID, "type", c.Type, "pageId", c.PageID, "position", c.Position)
	return c, nil
}

// ApplyPatch shallow-merges patch onto the stored component, persists the
// result and notifies the publisher. An empty patch returns the component
// unchanged. Patches to the same component are applied one at a time.
func (s *ComponentService) ApplyPatch(id string, patch component.Patch) (*component.Component, error) {
	unlock := s.lock(id)
	defer unlock()
	return s.applyPatch(id, patch)
}

// lock serialises writes to one component and returns the release func.
func (s *ComponentService) lock(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// applyPatch is ApplyPatch for callers already holding the component lock.
func (s *ComponentService) applyPatch(id string, patch component.Patch) (*component.Component, error) {
	marker := s.perfTracker.StartOperation("component:patch", id)
	defer marker.Complete()

	current, err := s.Get(id)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated := patch.Apply(current)
	changed := s.now()
	updated.Changed = &changed

	if err := s.repo.Update(updated); err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to apply patch to %s: %w", id, err)
	}
	marker.AddMetadata("buckets", patch.Buckets())

	s.logger.Content().Debug("Component patched", "componentId", id, "buckets", patch.Buckets())
	if s.publisher != nil {
		s.publisher.ComponentUpdated(updated, patch)
	}
	return updated, nil
}

// Delete removes a component and notifies the publisher.
func (s *ComponentService) Delete(id string) error {
	marker := s.perfTracker.StartOperation("component:delete", id)
	defer marker.Complete()

	unlock := s.lock(id)
	defer unlock()

	c, err := s.Get(id)
	if err != nil {
		marker.SetError(err)
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		marker.SetError(err)
		return fmt.Errorf("failed to delete component %s: %w", id, err)
	}

	s.logger.Content().Info("Component deleted", "componentId", id, "pageId", c.PageID)
	if s.publisher != nil {
		s.publisher.ComponentDeleted(id, c.PageID)
	}
	return nil
}
