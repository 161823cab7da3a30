// Package stores provides concrete cache store implementations
package stores

import (
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
)

// ComponentStore implements component caching operations
type ComponentStore struct {
	cache  *types.ComponentCache
	logger *logging.ChanneledLogger
	now    func() time.Time
}

// NewComponentStore creates a new component cache store
func NewComponentStore(logger *logging.ChanneledLogger) *ComponentStore {
	if logger != nil {
		logger.Cache().Info("Initializing component cache store")
	}
	return &ComponentStore{
		cache: &types.ComponentCache{
			Components:  make(map[string]*types.ComponentCacheEntry),
			PageIndexes: make(map[string]*types.ComponentIndex),
		},
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (cs *ComponentStore) logOp(operation, key string, hit bool, start time.Time) {
	if cs.logger != nil {
		cs.logger.LogCacheOperation(operation, key, hit, time.Since(start))
	}
}

// GetComponent returns a copy of the cached component
func (cs *ComponentStore) GetComponent(id string) (*component.Component, bool) {
	start := time.Now()
	cs.cache.Mu.Lock()
	entry, ok := cs.cache.Components[id]
	if ok {
		cs.cache.Hits++
	} else {
		cs.cache.Misses++
	}
	cs.cache.Mu.Unlock()

	cs.logOp("get_component", id, ok, start)
	if !ok {
		return nil, false
	}
	return component.Clone(entry.Component), true
}

// SetComponent caches a copy of c. Page and global ID lists are left alone;
// callers invalidate them when membership or order changes.
func (cs *ComponentStore) SetComponent(c *component.Component) {
	if c == nil {
		return
	}
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.Components[c.ID] = &types.ComponentCacheEntry{
		Component: component.Clone(c),
		CachedAt:  cs.now(),
	}
}

// GetPageComponentIDs returns the ordered IDs cached for pageID
func (cs *ComponentStore) GetPageComponentIDs(pageID string) ([]string, bool) {
	start := time.Now()
	cs.cache.Mu.RLock()
	idx, ok := cs.cache.PageIndexes[pageID]
	var ids []string
	if ok {
		ids = append([]string(nil), idx.IDs...)
	}
	cs.cache.Mu.RUnlock()

	cs.logOp("get_page_ids", pageID, ok, start)
	return ids, ok
}

// SetPageComponentIDs caches the ordered IDs for pageID
func (cs *ComponentStore) SetPageComponentIDs(pageID string, ids []string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.PageIndexes[pageID] = &types.ComponentIndex{
		IDs:      append([]string(nil), ids...),
		CachedAt: cs.now(),
	}
}

// GetAllComponentIDs returns the cached master ID list
func (cs *ComponentStore) GetAllComponentIDs() ([]string, bool) {
	start := time.Now()
	cs.cache.Mu.RLock()
	idx := cs.cache.AllIndex
	var ids []string
	if idx != nil {
		ids = append([]string(nil), idx.IDs...)
	}
	cs.cache.Mu.RUnlock()

	cs.logOp("get_all_ids", "*", idx != nil, start)
	return ids, idx != nil
}

// SetAllComponentIDs caches the master ID list
func (cs *ComponentStore) SetAllComponentIDs(ids []string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.AllIndex = &types.ComponentIndex{
		IDs:      append([]string(nil), ids...),
		CachedAt: cs.now(),
	}
}

// InvalidateComponent drops one component
func (cs *ComponentStore) InvalidateComponent(id string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	delete(cs.cache.Components, id)
}

// InvalidatePage drops the ID list of one page and the master list
func (cs *ComponentStore) InvalidatePage(pageID string) {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	delete(cs.cache.PageIndexes, pageID)
	cs.cache.AllIndex = nil
}

// InvalidateAll empties the store
func (cs *ComponentStore) InvalidateAll() {
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()
	cs.cache.Components = make(map[string]*types.ComponentCacheEntry)
	cs.cache.PageIndexes = make(map[string]*types.ComponentIndex)
	cs.cache.AllIndex = nil
	if cs.logger != nil {
		cs.logger.Cache().Info("Component cache invalidated")
	}
}

// PurgeExpired drops entries cached longer than ttl and returns how many
// were removed
func (cs *ComponentStore) PurgeExpired(ttl time.Duration) int {
	cutoff := cs.now().Add(-ttl)
	cs.cache.Mu.Lock()
	defer cs.cache.Mu.Unlock()

	removed := 0
	for id, entry := range cs.cache.Components {
		if entry.CachedAt.Before(cutoff) {
			delete(cs.cache.Components, id)
			removed++
		}
	}
	for pageID, idx := range cs.cache.PageIndexes {
		if idx.CachedAt.Before(cutoff) {
			delete(cs.cache.PageIndexes, pageID)
			removed++
		}
	}
	if cs.cache.AllIndex != nil && cs.cache.AllIndex.CachedAt.Before(cutoff) {
		cs.cache.AllIndex = nil
		removed++
	}
	return removed
}

// Stats reports the store size and hit counters
func (cs *ComponentStore) Stats() types.CacheStats {
	cs.cache.Mu.RLock()
	defer cs.cache.Mu.RUnlock()
	return types.CacheStats{
		Components:  len(cs.cache.Components),
		PageIndexes: len(cs.cache.PageIndexes),
		Hits:        cs.cache.Hits,
		Misses:      cs.cache.Misses,
	}
}
