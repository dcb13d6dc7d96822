package lookup

import (
	"context"
	"sync"
)

// FetchFunc fetches the value for key from a remote source.
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Cache is a process-lifetime map where the first write per key wins.
// There is no expiry or invalidation.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
}

// NewCache returns an empty cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// Get returns the cached value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Commit stores v under key unless a value is already there. It returns
// the value now cached and whether this call wrote it.
func (c *Cache[K, V]) Commit(key K, v V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing, false
	}
	c.entries[key] = v
	return v, true
}

// Len returns the number of cached keys.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cached returns the cached value for key, fetching and committing it on a
// miss. The lock is not held during fetch, so concurrent misses fetch
// redundantly and the first commit wins. Errors are not cached.
func Cached[K comparable, V any](ctx context.Context, c *Cache[K, V], key K, fetch FetchFunc[K, V]) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fetch(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	winner, _ := c.Commit(key, v)
	return winner, nil
}
