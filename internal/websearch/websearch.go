package websearch

import (
	"context"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

const (
	// DefaultMaxResults is the result count used when the caller does
	// not request one
	DefaultMaxResults = 10

	// MaxResultsLimit caps a single search regardless of the request
	MaxResultsLimit = 25
)

// Searcher finds pages on the open web for a query. An empty query is
// a normal request that yields zero results, not an error.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.WebResult, error)
}

// PageFetcher retrieves raw HTML for a URL. *fetcher.Fetcher satisfies
// it; search providers reuse its rate limiting and User-Agent instead
// of carrying their own HTTP stack.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*types.Page, error)
}

// clampMax applies the default and the hard cap to a requested result count.
func clampMax(maxResults int) int {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxResultsLimit {
		maxResults = MaxResultsLimit
	}
	return maxResults
}
