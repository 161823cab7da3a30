// Package interfaces defines cache operation contracts for the component
// store and editor sessions.
package interfaces

import (
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/types"
)

// ComponentCache defines operations for component caching. Implementations
// hand out copies so callers never share maps with the cache.
type ComponentCache interface {
	GetComponent(id string) (*component.Component, bool)
	SetComponent(c *component.Component)
	GetPageComponentIDs(pageID string) ([]string, bool)
	SetPageComponentIDs(pageID string, ids []string)
	GetAllComponentIDs() ([]string, bool)
	SetAllComponentIDs(ids []string)
	InvalidateComponent(id string)
	InvalidatePage(pageID string)
	InvalidateAll()
	PurgeExpired(ttl time.Duration) int
	Stats() types.CacheStats
}

// EditorSessionCache defines operations for inspector session state
type EditorSessionCache interface {
	GetSession(id string) (*types.EditorSession, bool)
	SetSession(session *types.EditorSession)
	TouchSession(id string) bool
	DeleteSession(id string)
	SessionsForComponent(componentID string) []string
	PurgeIdle(ttl time.Duration) []string
	Count() int
}
