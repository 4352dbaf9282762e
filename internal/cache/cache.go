// Package cache provides a small in-process TTL cache used to shield the
// Commerce Provider from redundant reads. Eviction is lazy: an entry past
// its TTL is dropped the next time it is read, there is no background
// sweep.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the cache lifetime applied by New.
const DefaultTTL = 300 * time.Second

type entry[V any] struct {
	data      V
	timestamp time.Time
}

// Cache is a flat string-keyed TTL cache. Safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[V]
}

// New builds a cache with the given TTL; ttl <= 0 falls back to DefaultTTL.
func New[V any](ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value for key if it is still fresh. A stale entry
// is evicted and reported as absent.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.timestamp) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.data, true
}

// Set stores value under key with the current timestamp, overwriting any
// prior entry.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{data: value, timestamp: c.now()}
}

// Clear drops every entry. Used by forced-refresh paths.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len reports the number of stored entries, stale ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
