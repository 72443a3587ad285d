// Package storage persists fetched-and-extracted pages so revisiting a
// URL within the cache TTL skips the network entirely.
//
// The layout is two layers with one key (sha256 of the URL): a SQLite
// store holding extracted text, fronted by an in-memory LRU with TTL
// entries. Sessions themselves are never stored here; only page text
// is, and only as a fetch cache.
//
// # SQLite Drivers
//
// Two drivers are supported via build tags:
//
//	CGO_ENABLED=0 go build ./...                    # modernc.org/sqlite (default)
//	CGO_ENABLED=1 go build -tags sqlite_cgo ./...   # mattn/go-sqlite3
//
// The schema is versioned through a schema_version table; migrations
// apply automatically on open.
package storage
