package utils

import (
	"sync"
	"time"
)

type Cache[T any] struct {
	value      T
	cachedAt   time.Time
	expiration time.Time
	populated  bool
	mutex      sync.RWMutex
}

// NewCache initializes a new cache with an empty value.
func NewCache[T any]() *Cache[T] {
	var zero T
	return &Cache[T]{
		value: zero,
	}
}

// Set sets a new value in the cache with an expiration time. The caller
// supplies the current instant so reads and writes share one time source.
func (c *Cache[T]) Set(now time.Time, value T, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.value = value
	c.cachedAt = now
	c.expiration = now.Add(duration)
	c.populated = true
}

// Get retrieves the cached value if it has not expired yet.
func (c *Cache[T]) Get(now time.Time) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.populated || now.After(c.expiration) || now.Equal(c.expiration) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// GetStale retrieves the cached value regardless of expiration. Used as a
// fallback when a refresh against the upstream source fails.
func (c *Cache[T]) GetStale() (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.populated {
		var zero T
		return zero, false
	}
	return c.value, true
}

// CachedAt returns the time the current value was stored.
func (c *Cache[T]) CachedAt() time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cachedAt
}

// Clear removes the cached value.
func (c *Cache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var zero T
	c.value = zero
	c.cachedAt = time.Time{}
	c.expiration = time.Time{}
	c.populated = false
}
