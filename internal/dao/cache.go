package dao

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is the default time-to-live for cached page sequences.
const DefaultCacheTTL = 5 * time.Minute

// cacheEntry holds cached pages with their timestamp.
type cacheEntry struct {
	pages     []Page
	timestamp time.Time
}

// PageCache provides TTL-based caching of accumulated pages per query identity.
type PageCache struct {
	data map[string]cacheEntry
	ttl  time.Duration
	now  func() time.Time
	mx   sync.RWMutex
}

// NewPageCache returns a PageCache whose entries expire after ttl.
// A non-positive TTL disables caching.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		data: make(map[string]cacheEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get retrieves cached pages for the given query.
// Returns false if the query is not found or the entry has expired.
func (c *PageCache) Get(q Query) ([]Page, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}

	c.mx.RLock()
	defer c.mx.RUnlock()

	entry, exists := c.data[q.String()]
	if !exists {
		return nil, false
	}

	if c.now().Sub(entry.timestamp) > c.ttl {
		return nil, false
	}

	out := make([]Page, len(entry.pages))
	copy(out, entry.pages)
	return out, true
}

// Set stores pages for the given query.
func (c *PageCache) Set(q Query, pages []Page) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	stored := make([]Page, len(pages))
	copy(stored, pages)
	c.data[q.String()] = cacheEntry{
		pages:     stored,
		timestamp: c.now(),
	}
}

// Invalidate drops the pages cached for q.
func (c *PageCache) Invalidate(q Query) {
	if c == nil {
		return
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	delete(c.data, q.String())
}

// InvalidateKey removes every search cached under the given cache key.
func (c *PageCache) InvalidateKey(key string) {
	c.InvalidatePrefix(key + ":")
}

// InvalidatePrefix removes all cache entries whose keys start with the given prefix.
func (c *PageCache) InvalidatePrefix(prefix string) {
	if c == nil {
		return
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
}

// Len returns the number of cached queries, expired ones included.
func (c *PageCache) Len() int {
	if c == nil {
		return 0
	}

	c.mx.RLock()
	defer c.mx.RUnlock()
	return len(c.data)
}

// Clear removes all entries from the cache.
func (c *PageCache) Clear() {
	if c == nil {
		return
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	c.data = make(map[string]cacheEntry)
}
