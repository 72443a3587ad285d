package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/pagereader-mcp/internal/extractor"
	"github.com/dshills/pagereader-mcp/internal/fetcher"
	"github.com/dshills/pagereader-mcp/internal/navigator"
	"github.com/dshills/pagereader-mcp/internal/storage"
	"github.com/dshills/pagereader-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams   = -32602 // Invalid method parameters
	ErrorCodeInternalError   = -32603 // Internal JSON-RPC error
	ErrorCodeNoActiveSession = -32001 // No page visited yet
	ErrorCodeSessionExpired  = -32002 // Page session idle past the timeout
	ErrorCodeChunkOutOfRange = -32003 // Requested chunk index does not exist
	ErrorCodeNoActiveSearch  = -32004 // search_next_on_page before search_on_page
	ErrorCodeFetchFailed     = -32005 // Page could not be fetched
)

// handleWebSearch handles the web_search tool invocation
func (s *Server) handleWebSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query := getStringDefault(args, "query", "")
	maxResults := getIntDefault(args, "max_results", 10)

	// An empty query is a normal request with zero results
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"query":         query,
			"results":       []interface{}{},
			"total_results": 0,
		})), nil
	}

	results, err := s.websearch.Search(ctx, query, maxResults)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "web search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"query":         query,
		"results":       results,
		"total_results": len(results),
	})), nil
}

// handleVisitPage handles the visit_page tool invocation
func (s *Server) handleVisitPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	url, ok := args["url"].(string)
	if !ok || url == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "url parameter is required", map[string]interface{}{
			"param":  "url",
			"reason": "missing or empty",
		})
	}

	text, err := s.pageText(ctx, url)
	if err != nil {
		return nil, mapFetchError(url, err)
	}

	sess, err := s.registry.Start(url, text)
	if err != nil {
		return nil, mapDomainError(err)
	}

	first := sess.Chunks()[0]
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"url":             url,
		"content":         s.formatChunk(first),
		"format":          "text",
		"chunk_index":     0,
		"total_chunks":    sess.ChunkCount(),
		"has_more_chunks": navigator.HasMore(sess),
	})), nil
}

// handleLoadMore handles the load_more tool invocation
func (s *Server) handleLoadMore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.registry.Current()
	if err != nil {
		return nil, mapDomainError(err)
	}

	chunk, ok := navigator.Advance(sess)
	if !ok {
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"status":          "complete",
			"message":         "No more chunks available",
			"chunk_index":     sess.Cursor(),
			"has_more_chunks": false,
		})), nil
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"status":          "success",
		"message":         fmt.Sprintf("Chunk %d loaded successfully", chunk.Index),
		"content":         s.formatChunk(chunk),
		"chunk_index":     chunk.Index,
		"has_more_chunks": navigator.HasMore(sess),
	})), nil
}

// handleSearchOnPage handles the search_on_page tool invocation
func (s *Server) handleSearchOnPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or empty",
		})
	}

	numSnippets := getIntDefault(args, "num_snippets", 0)

	sess, err := s.registry.Current()
	if err != nil {
		return nil, mapDomainError(err)
	}

	batch, err := s.engine.Search(sess, text, numSnippets)
	if err != nil {
		return nil, mapDomainError(err)
	}

	return mcp.NewToolResultText(formatJSON(searchBatchPayload(batch))), nil
}

// handleSearchNextOnPage handles the search_next_on_page tool invocation
func (s *Server) handleSearchNextOnPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	numSnippets := getIntDefault(args, "num_snippets", 0)

	sess, err := s.registry.Current()
	if err != nil {
		return nil, mapDomainError(err)
	}

	batch, err := s.engine.Continue(sess, numSnippets)
	if err != nil {
		return nil, mapDomainError(err)
	}

	return mcp.NewToolResultText(formatJSON(searchBatchPayload(batch))), nil
}

// handleReadChunk handles the read_chunk tool invocation
func (s *Server) handleReadChunk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	index, ok := getInt(args, "chunk_index")
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "chunk_index parameter is required", map[string]interface{}{
			"param":  "chunk_index",
			"reason": "missing or not an integer",
		})
	}

	sess, err := s.registry.Current()
	if err != nil {
		return nil, mapDomainError(err)
	}

	chunk, err := navigator.ReadChunk(sess, index)
	if err != nil {
		return nil, mapDomainError(err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"chunk_index":  chunk.Index,
		"content":      chunk.Text,
		"total_chunks": sess.ChunkCount(),
		"chunk_size":   chunk.Len(),
	})), nil
}

// handlePageStatus handles the page_status tool invocation
func (s *Server) handlePageStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.registry.Current()
	if err != nil {
		return nil, mapDomainError(err)
	}

	status := navigator.Status(sess)
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"url":             status.URL,
		"cursor":          status.Cursor,
		"total_chunks":    status.TotalChunks,
		"has_more_chunks": status.HasMoreChunks,
	})), nil
}

// handleExtractNewsArticle handles the extract_news_article tool invocation
func (s *Server) handleExtractNewsArticle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	url, ok := args["article_url"].(string)
	if !ok || url == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "article_url parameter is required", map[string]interface{}{
			"param":  "article_url",
			"reason": "missing or empty",
		})
	}
	includeMetadata := getBoolDefault(args, "include_metadata", true)

	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, mapFetchError(url, err)
	}

	article, err := extractor.Article(url, page.HTML, includeMetadata)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "article extraction failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"url":     article.URL,
		"title":   article.Title,
		"content": article.Content,
		"author":  article.Author,
		"date":    article.Date,
	})), nil
}

// handleScrapeProduct handles the scrape_product tool invocation
func (s *Server) handleScrapeProduct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	url, ok := args["product_url"].(string)
	if !ok || url == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "product_url parameter is required", map[string]interface{}{
			"param":  "product_url",
			"reason": "missing or empty",
		})
	}
	includeReviews := getBoolDefault(args, "include_reviews", false)

	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, mapFetchError(url, err)
	}

	product, err := extractor.Product(url, page.HTML, includeReviews)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "product extraction failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	payload := map[string]interface{}{
		"url":          product.URL,
		"name":         product.Name,
		"price":        product.Price,
		"description":  product.Description,
		"availability": product.Availability,
	}
	if includeReviews {
		payload["reviews"] = product.Reviews
	}

	return mcp.NewToolResultText(formatJSON(payload)), nil
}

// handleScrapeSocialProfile handles the scrape_social_profile tool invocation
func (s *Server) handleScrapeSocialProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	platform, ok := args["platform"].(string)
	if !ok || platform == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "platform parameter is required", map[string]interface{}{
			"param":  "platform",
			"reason": "missing or empty",
		})
	}

	url, ok := args["profile_url"].(string)
	if !ok || url == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "profile_url parameter is required", map[string]interface{}{
			"param":  "profile_url",
			"reason": "missing or empty",
		})
	}

	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, mapFetchError(url, err)
	}

	profile, err := extractor.Profile(platform, url, page.HTML)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "profile extraction failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"platform": profile.Platform,
		"url":      profile.URL,
		"title":    profile.Title,
		"name":     profile.Name,
		"bio":      profile.Bio,
	})), nil
}

// pageText returns the extracted text for url, consulting the page
// cache before fetching. Fresh fetches are extracted and cached.
func (s *Server) pageText(ctx context.Context, url string) (string, error) {
	if cached, err := s.cache.Get(ctx, url); err == nil {
		return cached.Text, nil
	}

	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	title, text := extractor.Document(page.HTML)
	if err := s.cache.Put(ctx, &storage.CachedPage{
		URL:       url,
		Title:     title,
		Text:      text,
		FetchedAt: page.FetchedAt,
	}); err != nil {
		// A cache write failure only costs a refetch later
		return text, nil
	}

	return text, nil
}

// formatChunk renders a chunk the way clients see it: an index header,
// the text, and a trailing ellipsis when the chunk is full-size (more
// content follows in the next chunk).
func (s *Server) formatChunk(chunk types.Chunk) string {
	content := fmt.Sprintf("Chunk %d\n%s", chunk.Index, chunk.Text)
	if chunk.Len() == s.registry.ChunkSize() {
		content += "..."
	}
	return content
}

// searchBatchPayload renders a search batch as the tool response shape.
func searchBatchPayload(batch *types.SearchBatch) map[string]interface{} {
	snippets := make([]map[string]interface{}, 0, len(batch.Snippets))
	for _, sn := range batch.Snippets {
		snippets = append(snippets, map[string]interface{}{
			"chunk_index": sn.ChunkIndex,
			"position":    sn.Position,
			"snippet":     sn.Text,
		})
	}

	return map[string]interface{}{
		"search_text":       batch.Query,
		"total_matches":     batch.TotalMatches,
		"snippets_returned": batch.Returned,
		"has_more_results":  batch.HasMore,
		"snippets":          snippets,
	}
}

// Error mapping

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// mapDomainError translates engine errors into MCP error codes.
func mapDomainError(err error) error {
	var invalidErr *types.InvalidInputError
	var rangeErr *types.ChunkRangeError

	switch {
	case errors.Is(err, types.ErrNoActiveSession):
		return newMCPError(ErrorCodeNoActiveSession,
			"no active session, call visit_page first", nil)
	case errors.Is(err, types.ErrSessionExpired):
		return newMCPError(ErrorCodeSessionExpired,
			"page session expired, call visit_page again", nil)
	case errors.Is(err, types.ErrNoActiveSearch):
		return newMCPError(ErrorCodeNoActiveSearch,
			"no active search, call search_on_page first", nil)
	case errors.As(err, &rangeErr):
		return newMCPError(ErrorCodeChunkOutOfRange, rangeErr.Error(), map[string]interface{}{
			"chunk_index":  rangeErr.Index,
			"total_chunks": rangeErr.Total,
		})
	case errors.As(err, &invalidErr):
		return newMCPError(ErrorCodeInvalidParams, invalidErr.Error(), nil)
	default:
		return newMCPError(ErrorCodeInternalError, err.Error(), nil)
	}
}

// mapFetchError translates fetch failures into MCP error codes.
func mapFetchError(url string, err error) error {
	var invalidErr *types.InvalidInputError
	var statusErr *fetcher.StatusError

	switch {
	case errors.Is(err, fetcher.ErrUnsafeURL):
		return newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("invalid or unsafe URL: %s", url), map[string]interface{}{
			"error": err.Error(),
		})
	case errors.As(err, &invalidErr):
		return newMCPError(ErrorCodeInvalidParams, invalidErr.Error(), nil)
	case errors.As(err, &statusErr):
		return newMCPError(ErrorCodeFetchFailed, fmt.Sprintf("failed to visit page: %s", url), map[string]interface{}{
			"status_code": statusErr.StatusCode,
		})
	default:
		return newMCPError(ErrorCodeFetchFailed, fmt.Sprintf("failed to visit page: %s", url), map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Parameter helpers

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getInt extracts a required integer parameter
func getInt(args map[string]interface{}, key string) (int, bool) {
	if val, ok := args[key].(float64); ok {
		return int(val), true
	}
	if val, ok := args[key].(int); ok {
		return val, true
	}
	return 0, false
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if v, ok := getInt(args, key); ok {
		return v
	}
	return defaultValue
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
