package stores

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
)

// EditorSessionStore keeps inspector sessions in memory
type EditorSessionStore struct {
	sessions map[string]*types.EditorSession
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger
	now      func() time.Time
}

// NewEditorSessionStore creates a new editor session store
func NewEditorSessionStore(logger *logging.ChanneledLogger) *EditorSessionStore {
	if logger != nil {
		logger.Cache().Info("Initializing editor session store")
	}
	return &EditorSessionStore{
		sessions: make(map[string]*types.EditorSession),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetSession returns a copy of the session
func (s *EditorSessionStore) GetSession(id string) (*types.EditorSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	out := *session
	return &out, true
}

// SetSession stores a copy of session and stamps its activity time
func (s *EditorSessionStore) SetSession(session *types.EditorSession) {
	stored := *session
	stored.LastActivity = s.now()
	if stored.Created.IsZero() {
		stored.Created = stored.LastActivity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[stored.ID] = &stored
}

// TouchSession refreshes the activity time. It reports false for an unknown
// session.
func (s *EditorSessionStore) TouchSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if ok {
		session.LastActivity = s.now()
	}
	return ok
}

// DeleteSession removes a session
func (s *EditorSessionStore) DeleteSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// SessionsForComponent lists the sessions open on componentID
func (s *EditorSessionStore) SessionsForComponent(componentID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for id, session := range s.sessions {
		if session.ComponentID == componentID {
			ids = append(ids, id)
		}
	}
	return ids
}

// PurgeIdle removes sessions idle for longer than ttl and returns their IDs
func (s *EditorSessionStore) PurgeIdle(ttl time.Duration) []string {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged []string
	for id, session := range s.sessions {
		if session.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			purged = append(purged, id)
		}
	}
	if len(purged) > 0 && s.logger != nil {
		s.logger.Cache().Info("Purged idle editor sessions", "count", len(purged), "ttl", ttl)
	}
	return purged
}

// Count returns the number of open sessions
func (s *EditorSessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
