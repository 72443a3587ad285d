package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/pagereader-mcp/internal/fetcher"
	"github.com/dshills/pagereader-mcp/internal/searcher"
	"github.com/dshills/pagereader-mcp/internal/session"
	"github.com/dshills/pagereader-mcp/internal/storage"
	"github.com/dshills/pagereader-mcp/internal/websearch"
	"github.com/dshills/pagereader-mcp/pkg/types"
)

const (
	// ServerName is the MCP server name
	ServerName = "pagereader-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultCachePath is the default location for the page cache
	DefaultCachePath = "~/.pagereader/cache"

	// EnvCachePath overrides the page cache directory
	EnvCachePath = "PAGEREADER_CACHE_PATH"
	// EnvCacheTTL overrides how long cached pages stay fresh
	EnvCacheTTL = "PAGEREADER_CACHE_TTL"
	// EnvCacheEntries overrides the in-memory cache capacity
	EnvCacheEntries = "PAGEREADER_CACHE_ENTRIES"
)

// PageFetcher retrieves raw pages. *fetcher.Fetcher satisfies it; tests
// substitute a stub so no tool handler touches the network.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*types.Page, error)
}

// WebSearcher runs open-web queries. *websearch.DuckDuckGo satisfies it.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.WebResult, error)
}

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	registry  *session.Registry
	engine    *searcher.Engine
	fetcher   PageFetcher
	websearch WebSearcher
	cache     *storage.Cache
}

// Option overrides a Server dependency, mainly for tests.
type Option func(*Server)

// WithFetcher substitutes the page fetcher.
func WithFetcher(f PageFetcher) Option {
	return func(s *Server) { s.fetcher = f }
}

// WithWebSearcher substitutes the web search provider.
func WithWebSearcher(w WebSearcher) Option {
	return func(s *Server) { s.websearch = w }
}

// NewServer creates a new MCP server instance. cachePath holds the
// SQLite page cache; pass "" for the default under the home directory.
func NewServer(cachePath string, opts ...Option) (*Server, error) {
	if cachePath == "" || cachePath == DefaultCachePath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cachePath = filepath.Join(home, ".pagereader", "cache")
	}

	if err := os.MkdirAll(cachePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	store, err := storage.NewSQLiteStore(filepath.Join(cachePath, "pages.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize page store: %w", err)
	}

	cache, err := storage.NewCache(store, cacheEntriesFromEnv(), cacheTTLFromEnv())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize page cache: %w", err)
	}

	f := fetcher.NewFromEnv()

	s := &Server{
		mcp:       server.NewMCPServer(ServerName, ServerVersion),
		registry:  session.NewRegistry(session.ConfigFromEnv()),
		engine:    searcher.NewFromEnv(),
		fetcher:   f,
		websearch: websearch.NewDuckDuckGo(f),
		cache:     cache,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() {
		s.registry.Clear()
		_ = s.cache.Close()
	}()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(webSearchTool(), s.handleWebSearch)
	s.mcp.AddTool(visitPageTool(), s.handleVisitPage)
	s.mcp.AddTool(loadMoreTool(), s.handleLoadMore)
	s.mcp.AddTool(searchOnPageTool(), s.handleSearchOnPage)
	s.mcp.AddTool(searchNextOnPageTool(), s.handleSearchNextOnPage)
	s.mcp.AddTool(readChunkTool(), s.handleReadChunk)
	s.mcp.AddTool(pageStatusTool(), s.handlePageStatus)
	s.mcp.AddTool(extractNewsArticleTool(), s.handleExtractNewsArticle)
	s.mcp.AddTool(scrapeProductTool(), s.handleScrapeProduct)
	s.mcp.AddTool(scrapeSocialProfileTool(), s.handleScrapeSocialProfile)
}

// cacheTTLFromEnv reads the page cache TTL override.
func cacheTTLFromEnv() time.Duration {
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return storage.DefaultCacheTTL
}

// cacheEntriesFromEnv reads the in-memory cache capacity override.
func cacheEntriesFromEnv() int {
	if v := os.Getenv(EnvCacheEntries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return storage.DefaultCacheEntries
}
