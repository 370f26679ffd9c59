// Package cache provides the short-lived read cache that fronts list and
// read operations against the remote store.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL-bounded in-memory cache. Every write operation that could
// change a cached result set must call Flush; invalidation is deliberately
// coarse, dropping all entries at once.
type Cache struct {
	c *gocache.Cache
}

// New returns a Cache whose entries expire after ttl. Expired entries are
// swept at twice the ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{c: gocache.New(ttl, 2*ttl)}
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache) Get(key string) (any, bool) {
	return c.c.Get(key)
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.c.SetDefault(key, value)
}

// Flush drops every cached entry.
func (c *Cache) Flush() {
	c.c.Flush()
}
