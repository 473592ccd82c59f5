package http

import (
	"portfolio/internal/cache"
)

// HomeCacheKey is the cache key of the rendered home page data.
const HomeCacheKey = "home"

// Notifier is told whenever public content changes.
type Notifier interface {
	Notify()
}

// Content is what content handlers share beyond the request Context: the
// public read cache and the hook told about writes.
type Content struct {
	Cache    *cache.Cache
	Notifier Notifier
}

// NewContent returns handler dependencies over c. A nil cache disables caching.
func NewContent(c *cache.Cache, notifier Notifier) *Content {
	if c == nil {
		c = cache.New(0)
	}
	return &Content{Cache: c, Notifier: notifier}
}

// Changed drops cached reads for kind and the home page, then notifies the
// revalidation hook.
func (c *Content) Changed(kind string) {
	c.Cache.Invalidate(kind + ":")
	c.Cache.Invalidate(HomeCacheKey)
	if c.Notifier != nil {
		c.Notifier.Notify()
	}
}
