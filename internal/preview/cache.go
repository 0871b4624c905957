package preview

import (
	"sync"
	"sync/atomic"
)

// Cache memoizes artifacts by file id. File content is immutable
// after creation, so an entry never goes stale on its own; Invalidate
// and Clear exist for callers that know better. The map is unbounded
// for the process lifetime.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Artifact

	derivations atomic.Int64
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]Artifact)}
}

// GetOrCreate returns the artifact for id, deriving it on first
// access. None results are memoized too, so repeated asks for
// unsupported content short-circuit. A hit never recomputes.
//
// Derivation runs outside the lock and is not mutually exclusive per
// key: two racing first-accesses may both compute and the last write
// wins, which is harmless because Derive is deterministic.
func (c *Cache) GetOrCreate(id string, content []byte, mime string) Artifact {
	if id == "" {
		return None
	}

	c.mu.RLock()
	artifact, ok := c.entries[id]
	c.mu.RUnlock()
	if ok {
		return artifact
	}

	c.derivations.Add(1)
	artifact = Derive(content, mime)

	c.mu.Lock()
	c.entries[id] = artifact
	c.mu.Unlock()

	return artifact
}

// Get returns the cached artifact without computing anything.
func (c *Cache) Get(id string) (Artifact, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	artifact, ok := c.entries[id]
	return artifact, ok
}

// Invalidate drops the entry for id.
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Artifact)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Derivations counts how many times Derive has actually run.
func (c *Cache) Derivations() int64 {
	return c.derivations.Load()
}
