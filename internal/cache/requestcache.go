package cache

import (
	"context"
	"sync"
)

// RequestCache memoizes lookups for the lifetime of one HTTP request.
// Handlers that resolve the same catalog row more than once while building
// a response hit the database only once. The cache is created by middleware
// and discarded with the request, so entries never go stale.
type RequestCache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

// New creates an empty RequestCache.
func New() *RequestCache {
	return &RequestCache{
		entries: make(map[string]interface{}),
	}
}

// Get returns the cached value for key, if any.
func (c *RequestCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores a value under key.
func (c *RequestCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// GetOrLoad returns the cached value for key, calling load on a miss and
// caching its result. Load errors are not cached.
func (c *RequestCache) GetOrLoad(key string, load func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	c.Set(key, v)
	return v, nil
}

type contextKey struct{}

var cacheKey = contextKey{}

// WithContext returns a new context carrying the cache.
func WithContext(ctx context.Context, c *RequestCache) context.Context {
	return context.WithValue(ctx, cacheKey, c)
}

// FromContext extracts the request cache from context. Returns a fresh
// throwaway cache when none is attached so callers never nil-check.
func FromContext(ctx context.Context) *RequestCache {
	if ctx != nil {
		if c, ok := ctx.Value(cacheKey).(*RequestCache); ok {
			return c
		}
	}
	return New()
}
