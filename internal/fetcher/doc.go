// Package fetcher retrieves raw page HTML for the rest of the server.
//
// A Fetcher is a plain HTTP client with guardrails: URLs are validated
// before any dial (scheme allowlist plus an internal-address blocklist),
// outbound requests share a token-bucket rate limiter, transient
// failures are retried with exponential backoff, and concurrent fetches
// of the same URL collapse into a single request.
//
// # Basic Usage
//
//	f := fetcher.NewFromEnv()
//
//	page, err := f.Fetch(ctx, "https://example.com/article")
//	if err != nil {
//	    // *StatusError for HTTP failures, ErrUnsafeURL for blocked hosts
//	}
//	_ = page.HTML
//
// # Configuration
//
// Environment variables:
//   - PAGEREADER_FETCH_TIMEOUT: per-fetch timeout (default "30s")
//   - PAGEREADER_USER_AGENT: request User-Agent
//   - PAGEREADER_FETCH_RPS: outbound requests per second (default 2)
//
// The fetcher never executes JavaScript; pages that require rendering
// come back as their static HTML.
package fetcher
