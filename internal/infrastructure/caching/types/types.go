// Package types holds the cache record types shared by stores and workers.
package types

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
)

// ComponentCacheEntry is one cached component with its load time.
type ComponentCacheEntry struct {
	Component *component.Component
	CachedAt  time.Time
}

// ComponentIndex is a cached ordered list of component IDs.
type ComponentIndex struct {
	IDs      []string
	CachedAt time.Time
}

// ComponentCache holds everything the component store caches.
type ComponentCache struct {
	Components  map[string]*ComponentCacheEntry
	PageIndexes map[string]*ComponentIndex
	AllIndex    *ComponentIndex
	Hits        int64
	Misses      int64
	Mu          sync.RWMutex
}

// EditorSession is the navigation state of one open inspector.
type EditorSession struct {
	ID           string    `json:"id"`
	ComponentID  string    `json:"componentId"`
	ActiveTab    string    `json:"activeTab"`
	Editor       string    `json:"editor"`
	Created      time.Time `json:"created"`
	LastActivity time.Time `json:"lastActivity"`
}

// CacheStats summarises a store for reporting.
type CacheStats struct {
	Components     int   `json:"components"`
	PageIndexes    int   `json:"pageIndexes"`
	EditorSessions int   `json:"editorSessions"`
	Hits           int64 `json:"hits"`
	Misses         int64 `json:"misses"`
}
