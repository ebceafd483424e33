// Package cache keeps recently seen title hashes in memory so repeat
// poll cycles skip the store lookup for stories that reappear every
// five minutes. It is an optimization only; the store remains the
// dedup authority.
package cache

import (
	"sync"
	"time"
)

type SeenCache struct {
	mu    sync.RWMutex
	items map[string]time.Time
	ttl   time.Duration
}

func NewSeen(ttl time.Duration) *SeenCache {
	c := &SeenCache{
		items: make(map[string]time.Time),
		ttl:   ttl,
	}

	// Cleanup expired items every hour
	go c.cleanupLoop()

	return c
}

// Seen reports whether the hash was marked within the TTL window.
func (c *SeenCache) Seen(hash string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	expires, exists := c.items[hash]
	if !exists {
		return false
	}
	return time.Now().Before(expires)
}

// Mark records the hash for the TTL window.
func (c *SeenCache) Mark(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[hash] = time.Now().Add(c.ttl)
}

// Len returns the number of entries, expired included.
func (c *SeenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *SeenCache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *SeenCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for hash, expires := range c.items {
		if now.After(expires) {
			delete(c.items, hash)
		}
	}
}
