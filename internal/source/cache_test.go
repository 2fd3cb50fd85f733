package source

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-civic/civicfeed/internal/model"
)

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("federal", "all", "20")
	b := CacheKey("federal", "ALL ", "20")
	c := CacheKey("federal", "all", "25")

	assert.Equal(t, a, b, "keys normalize case and whitespace")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestMemoryCacheTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Hour, 16).WithNow(func() time.Time { return now })

	records := []model.ContentRecord{{ID: "fed-hr1", Title: "Test Bill"}}
	cache.Put("k", records)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, records, got)

	now = now.Add(59 * time.Minute)
	_, ok = cache.Get("k")
	assert.True(t, ok, "entry inside TTL stays cached")

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("k")
	assert.False(t, ok, "entry past TTL expires")
	assert.Equal(t, 0, cache.Len(), "expired entry is dropped on read")
}

func TestMemoryCacheEvictsOldest(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(24*time.Hour, 3).WithNow(func() time.Time { return now })

	for i := 0; i < 4; i++ {
		cache.Put(fmt.Sprintf("k%d", i), []model.ContentRecord{{ID: fmt.Sprintf("r%d", i)}})
		now = now.Add(time.Minute)
	}

	assert.Equal(t, 3, cache.Len())
	_, ok := cache.Get("k0")
	assert.False(t, ok, "oldest entry evicted at cap")
	_, ok = cache.Get("k3")
	assert.True(t, ok)
}

func TestMemoryCachePurge(t *testing.T) {
	cache := NewMemoryCache(time.Hour, 16)
	cache.Put("a", []model.ContentRecord{{ID: "1"}})
	cache.Put("b", []model.ContentRecord{{ID: "2"}})

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get("a")
	assert.False(t, ok)
}
