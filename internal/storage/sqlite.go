package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface check
var _ Store = (*SQLiteStore)(nil)

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStore creates a SQLite-backed page cache at dbPath, applying
// any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetPage returns the cached page for url, or ErrNotFound.
func (s *SQLiteStore) GetPage(ctx context.Context, url string) (*CachedPage, error) {
	query := `
		SELECT url_key, url, title, text, fetched_at
		FROM pages WHERE url_key = ?
	`
	page := &CachedPage{}
	err := s.db.QueryRowContext(ctx, query, types.URLKey(url)).Scan(
		&page.URLKey, &page.URL, &page.Title, &page.Text, &page.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return page, nil
}

// PutPage inserts or replaces the cached page for page.URL.
func (s *SQLiteStore) PutPage(ctx context.Context, page *CachedPage) error {
	if page.URLKey == "" {
		page.URLKey = types.URLKey(page.URL)
	}
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now()
	}

	query := `
		INSERT INTO pages (url_key, url, title, text, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url_key) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			text = excluded.text,
			fetched_at = excluded.fetched_at,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query,
		page.URLKey, page.URL, page.Title, page.Text, page.FetchedAt); err != nil {
		return fmt.Errorf("failed to put page: %w", err)
	}
	return nil
}

// DeletePage removes the cached page for url.
func (s *SQLiteStore) DeletePage(ctx context.Context, url string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM pages WHERE url_key = ?", types.URLKey(url)); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	return nil
}

// PurgeOlderThan removes every page fetched before cutoff.
func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM pages WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge pages: %w", err)
	}
	return result.RowsAffected()
}

// GetStats returns cache statistics.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(LENGTH(text)), 0) FROM pages").
		Scan(&stats.Pages, &stats.TextBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if stats.Pages > 0 {
		err = s.db.QueryRowContext(ctx,
			"SELECT fetched_at FROM pages ORDER BY fetched_at ASC LIMIT 1").
			Scan(&stats.OldestAt)
		if err != nil {
			return nil, fmt.Errorf("failed to get oldest page: %w", err)
		}
	}

	return stats, nil
}
