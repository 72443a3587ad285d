package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

const (
	// DefaultCacheEntries is the in-memory LRU capacity
	DefaultCacheEntries = 256

	// DefaultCacheTTL is how long a cached page stays fresh
	DefaultCacheTTL = 1 * time.Hour
)

// cacheEntry pins a page in memory together with its freshness deadline
type cacheEntry struct {
	page      *CachedPage
	expiresAt time.Time
}

// Cache fronts a Store with an in-memory LRU so repeated visits to the
// same URL within the TTL never touch the database, let alone the
// network. Entries expire TTL after their fetch time, in memory and in
// the store alike: a stale row is treated as a miss.
type Cache struct {
	store Store
	lru   *lru.Cache[string, *cacheEntry]
	ttl   time.Duration
	mu    sync.RWMutex
}

// NewCache wraps store with an LRU of the given capacity and TTL.
// Non-positive values fall back to the defaults.
func NewCache(store Store, entries int, ttl time.Duration) (*Cache, error) {
	if entries <= 0 {
		entries = DefaultCacheEntries
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	l, err := lru.New[string, *cacheEntry](entries)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}

	return &Cache{store: store, lru: l, ttl: ttl}, nil
}

// Get returns the fresh cached page for url, or ErrNotFound. Stale
// memory entries are dropped; stale store rows are reported as misses
// and left for PurgeStale.
func (c *Cache) Get(ctx context.Context, url string) (*CachedPage, error) {
	key := cacheKey(url)
	now := time.Now()

	c.mu.RLock()
	entry, found := c.lru.Get(key)
	c.mu.RUnlock()

	if found {
		if now.Before(entry.expiresAt) {
			return entry.page, nil
		}
		c.mu.Lock()
		c.lru.Remove(key)
		c.mu.Unlock()
	}

	page, err := c.store.GetPage(ctx, url)
	if err != nil {
		return nil, err
	}

	if now.Sub(page.FetchedAt) > c.ttl {
		return nil, ErrNotFound
	}

	c.mu.Lock()
	c.lru.Add(key, &cacheEntry{page: page, expiresAt: page.FetchedAt.Add(c.ttl)})
	c.mu.Unlock()

	return page, nil
}

// Put persists the page and installs it in memory.
func (c *Cache) Put(ctx context.Context, page *CachedPage) error {
	if err := c.store.PutPage(ctx, page); err != nil {
		return err
	}

	c.mu.Lock()
	c.lru.Add(cacheKey(page.URL), &cacheEntry{
		page:      page,
		expiresAt: page.FetchedAt.Add(c.ttl),
	})
	c.mu.Unlock()

	return nil
}

// PurgeStale removes expired rows from the backing store.
func (c *Cache) PurgeStale(ctx context.Context) (int64, error) {
	return c.store.PurgeOlderThan(ctx, time.Now().Add(-c.ttl))
}

// Stats returns statistics from the backing store.
func (c *Cache) Stats(ctx context.Context) (*Stats, error) {
	return c.store.GetStats(ctx)
}

// Close closes the backing store.
func (c *Cache) Close() error {
	return c.store.Close()
}

// cacheKey is the LRU key for a URL, the same sha256 hex the store
// uses, so one key addresses both layers.
func cacheKey(url string) string {
	return types.URLKey(url)
}
