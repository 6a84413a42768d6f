package cachemanager

import "time"

// NoExpiration keeps an entry until it is deleted or the cache is flushed.
const NoExpiration time.Duration = -1

type CacheManager[K ~string, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(keys ...K)
	Flush()
	Items() map[K]V
	Len() int
}
