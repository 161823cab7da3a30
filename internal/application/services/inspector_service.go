package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/security"
)

// InspectorView is everything needed to draw an open inspector.
type InspectorView struct {
	SessionID string               `json:"sessionId"`
	Component *component.Component `json:"component"`
	ActiveTab inspector.Tab        `json:"activeTab"`
	Tabs      []inspector.Tab      `json:"tabs"`
	Panel     inspector.Panel      `json:"panel"`
}

// EditResult pairs the emitted patch with the refreshed view.
type EditResult struct {
	Patch component.Patch `json:"patch"`
	View  *InspectorView  `json:"view"`
}

// InspectorService drives inspector shells for editors. Sessions hold only
// navigation state; component content is always reloaded from the store.
type InspectorService struct {
	components  *ComponentService
	sessions    interfaces.EditorSessionCache
	clipboard   inspector.Clipboard
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	now         func() time.Time
}

// NewInspectorService creates the inspector session service. clipboard may
// be nil, in which case exports only return the payload.
func NewInspectorService(components *ComponentService, sessions interfaces.EditorSessionCache, clipboard inspector.Clipboard, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *InspectorService {
	return &InspectorService{
		components:  components,
		sessions:    sessions,
		clipboard:   clipboard,
		logger:      logger,
		perfTracker: perfTracker,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Open starts a session on componentID with the properties tab active.
func (s *InspectorService) Open(componentID, editor string) (*InspectorView, error) {
	c, err := s.components.Get(componentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &types.EditorSession{
		ID:           security.GenerateULID(),
		ComponentID:  c.ID,
		ActiveTab:    string(inspector.TabProperties),
		Editor:       editor,
		Created:      now,
		LastActivity: now,
	}
	s.sessions.SetSession(session)

	s.logger.Inspector().Info("Inspector opened", "sessionId", session.ID, "componentId", c.ID, "type", c.Type, "editor", editor)
	return s.view(session, inspector.NewShell(c, nil, nil)), nil
}

// View renders the session's active tab against the stored component.
func (s *InspectorService) View(sessionID string) (*InspectorView, error) {
	session, shell, err := s.load(sessionID, nil, nil)
	if err != nil {
		return nil, err
	}
	return s.view(session, shell), nil
}

// SelectTab switches the session's active tab.
func (s *InspectorService) SelectTab(sessionID string, tab inspector.Tab) (*InspectorView, error) {
	session, shell, err := s.load(sessionID, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := shell.SelectTab(tab); err != nil {
		return nil, err
	}
	session.ActiveTab = string(tab)
	session.LastActivity = s.now()
	s.sessions.SetSession(session)
	return s.view(session, shell), nil
}

// Edit decodes raw for fieldID on tab and applies the resulting patch
// through the component store. Nothing is stored when decoding fails.
func (s *InspectorService) Edit(sessionID string, tab inspector.Tab, fieldID, raw string) (*EditResult, error) {
	marker := s.perfTracker.StartOperation("inspector:edit", sessionID)
	defer marker.Complete()

	unlock, err := s.lockComponent(sessionID)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}
	defer unlock()

	var applyErr error
	var shell *inspector.Shell
	onUpdate := func(p component.Patch) {
		updated, err := s.components.applyPatch(shell.Component().ID, p)
		if err != nil {
			applyErr = err
			return
		}
		shell.Sync(updated)
	}

	session, shell, err := s.load(sessionID, onUpdate, nil)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	patch, err := shell.Edit(tab, fieldID, raw)
	if err == nil {
		err = applyErr
	}
	if err != nil {
		marker.SetError(err)
		s.logger.Inspector().Debug("Inspector edit rejected", "sessionId", sessionID, "tab", tab, "field", fieldID, "error", err)
		return nil, err
	}
	marker.AddMetadata("field", string(tab)+"/"+fieldID)

	return &EditResult{Patch: patch, View: s.view(session, shell)}, nil
}

// Rename changes the component's display label.
func (s *InspectorService) Rename(sessionID, name string) (*InspectorView, error) {
	unlock, err := s.lockComponent(sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var applyErr error
	var shell *inspector.Shell
	onUpdate := func(p component.Patch) {
		updated, err := s.components.applyPatch(shell.Component().ID, p)
		if err != nil {
			applyErr = err
			return
		}
		shell.Sync(updated)
	}

	session, shell, err := s.load(sessionID, onUpdate, nil)
	if err != nil {
		return nil, err
	}
	shell.Rename(name)
	if applyErr != nil {
		return nil, applyErr
	}
	return s.view(session, shell), nil
}

// Export serialises the session's component and hands it to the configured
// clipboard. A clipboard failure is reported in the result, not as an error.
func (s *InspectorService) Export(sessionID string) (inspector.ExportResult, error) {
	_, shell, err := s.load(sessionID, nil, nil)
	if err != nil {
		return inspector.ExportResult{}, err
	}

	result := shell.Export(s.clipboard)
	if result.Err != nil {
		s.logger.LogError(logging.ChannelInspector, "export", result.Err, map[string]any{"sessionId": sessionID})
	}
	return result, nil
}

// DeleteComponent forwards the shell's delete request to the store and
// closes every session open on the component.
func (s *InspectorService) DeleteComponent(sessionID string) error {
	var deleteErr error
	var componentID string
	onDelete := func() {
		deleteErr = s.components.Delete(componentID)
	}

	_, shell, err := s.load(sessionID, nil, onDelete)
	if err != nil {
		return err
	}
	componentID = shell.Component().ID
	shell.Delete()
	if deleteErr != nil {
		return deleteErr
	}

	s.CloseComponent(componentID)
	return nil
}

// Close ends a session.
func (s *InspectorService) Close(sessionID string) error {
	if _, ok := s.sessions.GetSession(sessionID); !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.sessions.DeleteSession(sessionID)
	s.logger.Inspector().Info("Inspector closed", "sessionId", sessionID)
	return nil
}

// CloseComponent ends every session open on componentID.
func (s *InspectorService) CloseComponent(componentID string) {
	for _, id := range s.sessions.SessionsForComponent(componentID) {
		s.sessions.DeleteSession(id)
	}
}

// SessionExpired is the cleanup worker hook for idle sessions.
func (s *InspectorService) SessionExpired(sessionID string) {
	s.logger.Inspector().Debug("Inspector session expired", "sessionId", sessionID)
}

// OpenSessions returns the number of live sessions.
func (s *InspectorService) OpenSessions() int {
	return s.sessions.Count()
}

// lockComponent takes the store's write lock for the session's component.
// The shell must be loaded after the lock is held so the patch it builds
// starts from the latest stored buckets.
func (s *InspectorService) lockComponent(sessionID string) (func(), error) {
	session, ok := s.sessions.GetSession(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return s.components.lock(session.ComponentID), nil
}

// load rebuilds the shell for sessionID from the stored component. A session
// whose component has gone is closed.
func (s *InspectorService) load(sessionID string, onUpdate func(component.Patch), onDelete func()) (*types.EditorSession, *inspector.Shell, error) {
	if !security.IsULID(sessionID) {
		return nil, nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	session, ok := s.sessions.GetSession(sessionID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	c, err := s.components.Get(session.ComponentID)
	if err != nil {
		if errors.Is(err, ErrComponentNotFound) {
			s.sessions.DeleteSession(sessionID)
		}
		return nil, nil, err
	}

	shell := inspector.NewShell(c, onUpdate, onDelete)
	if err := shell.SelectTab(inspector.Tab(session.ActiveTab)); err != nil {
		session.ActiveTab = string(inspector.TabProperties)
	}
	s.sessions.TouchSession(sessionID)
	return session, shell, nil
}

func (s *InspectorService) view(session *types.EditorSession, shell *inspector.Shell) *InspectorView {
	return &InspectorView{
		SessionID: session.ID,
		Component: shell.Component(),
		ActiveTab: shell.ActiveTab(),
		Tabs:      inspector.Tabs,
		Panel:     shell.Panel(),
	}
}
