package repositories

import (
	"sync"
	"time"
)

// listCache is a small TTL cache for list-shaped reads (categories, food).
// Entries are never swept: a stale entry is ignored and overwritten by the
// next miss. Writers replace the whole value, never mutate it in place.
type listCache[T any] struct {
	mu      sync.RWMutex
	value   []T
	fetched time.Time
	ttl     time.Duration
	now     func() time.Time
}

func newListCache[T any](ttl time.Duration) *listCache[T] {
	return &listCache[T]{ttl: ttl, now: time.Now}
}

// get returns the cached list and true while the entry is fresh.
func (c *listCache[T]) get() ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetched.IsZero() || c.now().Sub(c.fetched) >= c.ttl {
		return nil, false
	}
	return c.value, true
}

// set replaces the cached list with a fresh timestamp.
func (c *listCache[T]) set(value []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.fetched = c.now()
}

// invalidate drops the entry so the next read goes remote.
func (c *listCache[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.fetched = time.Time{}
}
