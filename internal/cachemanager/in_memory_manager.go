package cachemanager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/quants/internal/log"
)

// DefaultCleanupInterval is how often expired entries are purged. Entries set
// with NoExpiration are never purged.
const DefaultCleanupInterval = 30 * time.Minute

// NewInMemoryCacheManager initializes the in-memory cache.
func NewInMemoryCacheManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// InMemoryCacheManager is the go-cache implementation of CacheManager.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
}

// Get retrieves an item from the cache by its key
func (c *InMemoryCacheManager[K, V]) Get(key K) (V, bool) {
	var zeroValue V

	value, found := c.cache.Get(string(key))
	if !found {
		log.Debug(log.CatCache, "cache miss", "cache", c.useCase, "key", key)
		return zeroValue, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)

		return zeroValue, false
	}

	return v, true
}

// Set stores value under key for ttl.
func (c *InMemoryCacheManager[K, V]) Set(key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes the values stored under keys.
func (c *InMemoryCacheManager[K, V]) Delete(keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush removes every value.
func (c *InMemoryCacheManager[K, V]) Flush() {
	c.cache.Flush()
}

// Items returns a snapshot of the unexpired entries. Entries of the wrong type
// are skipped.
func (c *InMemoryCacheManager[K, V]) Items() map[K]V {
	items := c.cache.Items()
	out := make(map[K]V, len(items))
	for key, item := range items {
		if item.Expired() {
			continue
		}
		if v, ok := item.Object.(V); ok {
			out[K(key)] = v
		}
	}
	return out
}

// Len returns the number of stored entries, including expired entries that
// have not been purged yet.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.cache.ItemCount()
}
