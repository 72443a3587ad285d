package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested page is not cached
	ErrNotFound = errors.New("not found")
)

// CachedPage is one fetched-and-extracted page as persisted in the
// cache. Text is the extracted plain text, not the raw HTML; sessions
// chunk it directly on a cache hit without re-fetching.
type CachedPage struct {
	// Identification
	URLKey string // sha256 hex of URL, the primary key
	URL    string
	Title  string

	// Content
	Text string

	// Metadata
	FetchedAt time.Time
}

// Stats summarizes cache contents.
type Stats struct {
	Pages     int64
	TextBytes int64
	OldestAt  time.Time
}

// Store persists extracted pages keyed by URL hash. Implementations
// must treat PutPage as an upsert: refetching a URL replaces its entry.
type Store interface {
	// GetPage returns the cached page for url, or ErrNotFound.
	GetPage(ctx context.Context, url string) (*CachedPage, error)

	// PutPage inserts or replaces the cached page.
	PutPage(ctx context.Context, page *CachedPage) error

	// DeletePage removes the cached page for url. Deleting an absent
	// page is not an error.
	DeletePage(ctx context.Context, url string) error

	// PurgeOlderThan removes every page fetched before cutoff and
	// reports how many were removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// GetStats returns cache statistics.
	GetStats(ctx context.Context) (*Stats, error)

	// Close releases the underlying resources.
	Close() error
}
