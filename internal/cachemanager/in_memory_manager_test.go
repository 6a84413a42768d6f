package cachemanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type pairKey string

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", NoExpiration, DefaultCleanupInterval)
	})
}

type exampleConverter struct {
	Scale  float64
	Offset float64
}

func TestNewInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[pairKey, exampleConverter]("converters", NoExpiration, DefaultCleanupInterval)
	example := exampleConverter{Scale: 1000}
	cache.Set("kg|g", example, NoExpiration)

	got, ok := cache.Get("kg|g")
	require.True(t, ok)
	require.Equal(t, example, got)
}

func TestNewInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[pairKey, string]("converters", NoExpiration, DefaultCleanupInterval)

	got, ok := cache.Get("kg|g")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestNewInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[pairKey, string]("converters", NoExpiration, DefaultCleanupInterval)

	cache.cache.Set("kg|g", 123, NoExpiration)

	got, ok := cache.Get("kg|g")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestNewInMemoryCacheManager_NoExpirationSurvivesDefaultExpiry(t *testing.T) {
	cache := NewInMemoryCacheManager[pairKey, string]("converters", time.Millisecond, DefaultCleanupInterval)
	cache.Set("kept", "a", NoExpiration)
	cache.Set("expiring", "b", time.Nanosecond)

	time.Sleep(5 * time.Millisecond)

	_, ok := cache.Get("kept")
	require.True(t, ok)
	_, ok = cache.Get("expiring")
	require.False(t, ok)
	require.Equal(t, map[pairKey]string{"kept": "a"}, cache.Items())
}

func TestNewInMemoryCacheManager_DeleteWithNoKeysDoesNothing(t *testing.T) {
	cache := NewInMemoryCacheManager[pairKey, string]("converters", NoExpiration, DefaultCleanupInterval)
	cache.Set("kg|g", "x", NoExpiration)

	cache.Delete()
	require.Equal(t, 1, cache.Len())
}

func TestNewInMemoryCacheManager_DeleteExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[pairKey, string]("converters", NoExpiration, DefaultCleanupInterval)
	cache.Set("kg|g", "x", NoExpiration)
	cache.Set("g|lb", "y", NoExpiration)

	cache.Delete("kg|g")

	_, ok := cache.Get("kg|g")
	require.False(t, ok)
	got, ok := cache.Get("g|lb")
	require.True(t, ok)
	require.Equal(t, "y", got)
}

func TestNewInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[pairKey, string]("converters", NoExpiration, DefaultCleanupInterval)
	cache.Set("kg|g", "x", NoExpiration)
	cache.Set("g|lb", "y", NoExpiration)
	require.Equal(t, 2, cache.Len())

	cache.Flush()

	require.Equal(t, 0, cache.Len())
	require.Empty(t, cache.Items())
}

func TestNewInMemoryCacheManager_ItemsSkipsWrongType(t *testing.T) {
	cache := NewInMemoryCacheManager[pairKey, string]("converters", NoExpiration, DefaultCleanupInterval)
	cache.Set("kg|g", "x", NoExpiration)
	cache.cache.Set("bad", 42, NoExpiration)

	require.Equal(t, map[pairKey]string{"kg|g": "x"}, cache.Items())
}
