package cache

import (
	"sync"
	"time"
)

// CacheEntry represents cached asset content with expiration
type CacheEntry struct {
	Content    string
	ExpiryTime time.Time
}

// ContentCache provides thread-safe caching of full asset bodies. Entries
// are invalidated explicitly on save and regeneration, and lazily by TTL.
type ContentCache struct {
	cache map[string]CacheEntry
	ttl   time.Duration
	mutex sync.RWMutex
}

// NewContentCache creates a new content cache instance
func NewContentCache(ttl time.Duration) *ContentCache {
	return &ContentCache{
		cache: make(map[string]CacheEntry),
		ttl:   ttl,
	}
}

// Get retrieves content from cache if not expired
func (c *ContentCache) Get(key string) (string, bool) {
	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && time.Now().Before(entry.ExpiryTime) {
		return entry.Content, true
	}

	return "", false
}

// Set stores content in cache with the configured TTL
func (c *ContentCache) Set(key string, content string) {
	c.mutex.Lock()
	c.cache[key] = CacheEntry{
		Content:    content,
		ExpiryTime: time.Now().Add(c.ttl),
	}
	c.mutex.Unlock()
}

// Invalidate removes one entry, forcing the next read to refetch
func (c *ContentCache) Invalidate(key string) {
	c.mutex.Lock()
	delete(c.cache, key)
	c.mutex.Unlock()
}

// Clear removes expired entries from cache
func (c *ContentCache) Clear() {
	c.mutex.Lock()
	for key, entry := range c.cache {
		if time.Now().After(entry.ExpiryTime) {
			delete(c.cache, key)
		}
	}
	c.mutex.Unlock()
}
