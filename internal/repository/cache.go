package repository

import (
	"context"
	"sync"

	"sf-tree-identifier/internal/models"
	"sf-tree-identifier/internal/observability"
)

// Catalog looks up species by key.
type Catalog interface {
	Species(ctx context.Context, key models.SpeciesKey) (*models.Species, error)
}

// CachedCatalog wraps a Catalog with an in-memory LRU cache. The catalog is
// small and never changes while serving, so most lookups are hits.
type CachedCatalog struct {
	inner   Catalog
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedCatalog creates a cache decorator around a catalog. metrics may be nil.
func NewCachedCatalog(inner Catalog, maxEntries int, metrics *observability.Metrics) *CachedCatalog {
	return &CachedCatalog{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedCatalog) Species(ctx context.Context, key models.SpeciesKey) (*models.Species, error) {
	if s, ok := c.cache.get(key); ok {
		c.count("hit")
		copied := s
		return &copied, nil
	}
	c.count("miss")

	s, err := c.inner.Species(ctx, key)
	if err != nil {
		// Errors, including ErrSpeciesNotFound, are never cached.
		return nil, err
	}
	c.cache.put(key, *s)
	return s, nil
}

func (c *CachedCatalog) count(result string) {
	if c.metrics != nil {
		c.metrics.SpeciesCache.WithLabelValues(result).Inc()
	}
}

// lruCache is a thread-safe LRU cache of species by key.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[models.SpeciesKey]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   models.SpeciesKey
	value models.Species
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[models.SpeciesKey]*entry),
	}
}

func (c *lruCache) get(key models.SpeciesKey) (models.Species, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return models.Species{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key models.SpeciesKey, value models.Species) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.pushFront(e)

	for len(c.entries) > c.maxEntries && c.tail != nil {
		delete(c.entries, c.tail.key)
		c.unlink(c.tail)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *lruCache) pushFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}
