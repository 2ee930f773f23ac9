package ingest

import (
	"sync"

	"attrilens/domain/dataset"
)

// Cache memoizes normalized Datasets by source identity. It is owned by the
// Loader that fills it, not shared module state, and entries only leave via
// explicit Drop: the source file is treated as immutable for the session.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*dataset.Dataset
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*dataset.Dataset)}
}

// Get returns the cached Dataset for a source key, if present.
func (c *Cache) Get(key string) (*dataset.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.entries[key]
	return ds, ok
}

// Put stores a Dataset under its source key.
func (c *Cache) Put(key string, ds *dataset.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ds
}

// Drop removes one entry.
func (c *Cache) Drop(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of cached datasets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
