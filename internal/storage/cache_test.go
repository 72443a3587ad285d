package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a Store and counts GetPage calls so tests can
// tell memory hits from store hits.
type countingStore struct {
	Store
	gets int
}

func (c *countingStore) GetPage(ctx context.Context, url string) (*CachedPage, error) {
	c.gets++
	return c.Store.GetPage(ctx, url)
}

func setupTestCache(t *testing.T, ttl time.Duration) (*Cache, *countingStore) {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)

	counting := &countingStore{Store: store}
	cache, err := NewCache(counting, 16, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, counting
}

func TestCache_MemoryHitSkipsStore(t *testing.T) {
	cache, counting := setupTestCache(t, time.Hour)
	ctx := context.Background()

	page := testPage("https://example.com/a", time.Now())
	require.NoError(t, cache.Put(ctx, page))

	got, err := cache.Get(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, page.Text, got.Text)
	assert.Equal(t, 0, counting.gets, "fresh Put must serve Gets from memory")
}

func TestCache_Miss(t *testing.T) {
	cache, _ := setupTestCache(t, time.Hour)

	_, err := cache.Get(context.Background(), "https://example.com/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCache_StoreHitPopulatesMemory(t *testing.T) {
	cache, counting := setupTestCache(t, time.Hour)
	ctx := context.Background()

	// Write through the store directly so memory starts cold
	require.NoError(t, counting.Store.PutPage(ctx, testPage("https://example.com/a", time.Now())))

	_, err := cache.Get(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, 1, counting.gets)

	_, err = cache.Get(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, 1, counting.gets, "second Get must be a memory hit")
}

func TestCache_ExpiredEntriesAreMisses(t *testing.T) {
	cache, _ := setupTestCache(t, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, testPage("https://example.com/a", time.Now())))

	_, err := cache.Get(ctx, "https://example.com/a")
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	_, err = cache.Get(ctx, "https://example.com/a")
	assert.ErrorIs(t, err, ErrNotFound, "entries past the TTL are misses")
}

func TestCache_PurgeStale(t *testing.T) {
	cache, counting := setupTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, counting.Store.PutPage(ctx,
		testPage("https://example.com/old", time.Now().Add(-2*time.Hour))))
	require.NoError(t, cache.Put(ctx, testPage("https://example.com/fresh", time.Now())))

	removed, err := cache.PurgeStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	stats, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Pages)
}
