package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache keeps public read results for a short TTL. A zero TTL disables it.
type Cache struct {
	store   *gocache.Cache
	enabled bool
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return &Cache{store: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Cache{
		store:   gocache.New(ttl, 2*ttl),
		enabled: true,
	}
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (interface{}, bool) {
	if c == nil || !c.enabled {
		return nil, false
	}
	return c.store.Get(key)
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	if c == nil || !c.enabled {
		return
	}
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Invalidate drops every entry whose key starts with prefix.
func (c *Cache) Invalidate(prefix string) {
	if c == nil || !c.enabled {
		return
	}
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}

// Flush drops every entry.
func (c *Cache) Flush() {
	if c == nil {
		return
	}
	c.store.Flush()
}

// Remember returns the cached value for key, calling load and caching its
// result on a miss. Load errors are returned and never cached.
func Remember[T any](c *Cache, key string, load func() (T, error)) (T, error) {
	if cached, ok := c.Get(key); ok {
		if value, ok := cached.(T); ok {
			return value, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	c.Set(key, value)
	return value, nil
}
