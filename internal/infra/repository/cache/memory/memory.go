package memory

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Cache keeps values for the lifetime of the process. Entries are never
// expired or evicted.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

func NewCache[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]V),
	}
}

func (c *Cache[V]) Get(ctx context.Context, key string) (V, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, ErrCacheMiss
	}

	return value, nil
}

// Set stores value under key, replacing any previous value.
func (c *Cache[V]) Set(ctx context.Context, key string, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value

	return nil
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
