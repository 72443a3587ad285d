package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dshills/pagereader-mcp/internal/extractor"
	"github.com/dshills/pagereader-mcp/internal/storage"
)

// CacheFlowSuite exercises the page cache against a real SQLite file,
// covering what a server restart would see.
type CacheFlowSuite struct {
	suite.Suite
	ctx    context.Context
	dbPath string
}

// SetupTest runs before each test
func (s *CacheFlowSuite) SetupTest() {
	s.ctx = context.Background()
	s.dbPath = filepath.Join(s.T().TempDir(), "pages.db")
}

// openCache opens a fresh store and cache over the suite's database file
func (s *CacheFlowSuite) openCache(ttl time.Duration) *storage.Cache {
	store, err := storage.NewSQLiteStore(s.dbPath)
	s.Require().NoError(err)

	cache, err := storage.NewCache(store, 16, ttl)
	s.Require().NoError(err)
	return cache
}

// TestExtractStoreReload round-trips an extracted page through the
// cache, then reopens the database as a restarted server would
func (s *CacheFlowSuite) TestExtractStoreReload() {
	title, text := extractor.Document(pageFixture)

	cache := s.openCache(time.Hour)
	err := cache.Put(s.ctx, &storage.CachedPage{
		URL:       "https://example.com/birds",
		Title:     title,
		Text:      text,
		FetchedAt: time.Now(),
	})
	s.Require().NoError(err)

	page, err := cache.Get(s.ctx, "https://example.com/birds")
	s.Require().NoError(err)
	s.Equal("Field Guide", page.Title)
	s.Equal(text, page.Text)

	s.Require().NoError(cache.Close())

	// Reopen: the memory layer is gone but the row survives
	reopened := s.openCache(time.Hour)
	defer func() { s.NoError(reopened.Close()) }()

	page, err = reopened.Get(s.ctx, "https://example.com/birds")
	s.Require().NoError(err)
	s.Equal(text, page.Text)
}

// TestStaleRowIsAMiss reopens with a tiny TTL so the stored row reads
// as expired
func (s *CacheFlowSuite) TestStaleRowIsAMiss() {
	cache := s.openCache(time.Hour)
	err := cache.Put(s.ctx, &storage.CachedPage{
		URL:       "https://example.com/old",
		Title:     "Old",
		Text:      "stale content",
		FetchedAt: time.Now().Add(-time.Minute),
	})
	s.Require().NoError(err)
	s.Require().NoError(cache.Close())

	strict := s.openCache(time.Second)
	defer func() { s.NoError(strict.Close()) }()

	_, err = strict.Get(s.ctx, "https://example.com/old")
	s.ErrorIs(err, storage.ErrNotFound)

	// PurgeStale physically removes what Get only skipped
	removed, err := strict.PurgeStale(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), removed)

	stats, err := strict.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), stats.Pages)
}

// TestRevisitOverwrites stores the same URL twice and keeps the newer text
func (s *CacheFlowSuite) TestRevisitOverwrites() {
	cache := s.openCache(time.Hour)
	defer func() { s.NoError(cache.Close()) }()

	for _, text := range []string{"first version", "second version"} {
		err := cache.Put(s.ctx, &storage.CachedPage{
			URL:       "https://example.com/page",
			Title:     "Page",
			Text:      text,
			FetchedAt: time.Now(),
		})
		s.Require().NoError(err)
	}

	page, err := cache.Get(s.ctx, "https://example.com/page")
	s.Require().NoError(err)
	s.Equal("second version", page.Text)

	stats, err := cache.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), stats.Pages, "revisits upsert, not duplicate")
}

// TestCacheFlowSuite runs the cache flow test suite
func TestCacheFlowSuite(t *testing.T) {
	suite.Run(t, new(CacheFlowSuite))
}
