package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// webSearchTool returns the tool definition for web_search
func webSearchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "web_search",
		Description: "Search the web and return structured results with titles, URLs, and snippets. Use this to find current information or discover URLs to visit with visit_page.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query. An empty query returns an empty result set.",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-25)",
					"default":     10,
					"minimum":     1,
					"maximum":     25,
				},
			},
			Required: []string{"query"},
		},
	}
}

// visitPageTool returns the tool definition for visit_page
func visitPageTool() mcp.Tool {
	return mcp.Tool{
		Name:        "visit_page",
		Description: "Visit a webpage and extract its content as plain text. Large pages are split into chunks; the first chunk is returned immediately and has_more_chunks tells you whether to call load_more for the rest.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "URL to visit (http or https)",
				},
			},
			Required: []string{"url"},
		},
	}
}

// loadMoreTool returns the tool definition for load_more
func loadMoreTool() mcp.Tool {
	return mcp.Tool{
		Name:        "load_more",
		Description: "Load the next content chunk from the currently visited page. Call this after visit_page when has_more_chunks is true, and keep calling until it becomes false. Takes no parameters.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// searchOnPageTool returns the tool definition for search_on_page
func searchOnPageTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_on_page",
		Description: "Search for text within the currently visited page. Returns context snippets around each match with the chunk each match falls in. Matching is case-insensitive across the whole page, not just the loaded chunks.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to search for",
				},
				"num_snippets": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of snippets to return (1-100)",
					"default":     5,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"text"},
		},
	}
}

// searchNextOnPageTool returns the tool definition for search_next_on_page
func searchNextOnPageTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_next_on_page",
		Description: "Continue the previous search_on_page from where it left off, returning the next batch of snippets for the same text. Fails if no search is active on the current page.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"num_snippets": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of snippets to return (1-100)",
					"default":     5,
					"minimum":     1,
					"maximum":     100,
				},
			},
		},
	}
}

// readChunkTool returns the tool definition for read_chunk
func readChunkTool() mcp.Tool {
	return mcp.Tool{
		Name:        "read_chunk",
		Description: "Read a specific content chunk from the currently visited page by index, without moving the reading position. Useful for jumping to the chunk a search match landed in.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"chunk_index": map[string]interface{}{
					"type":        "integer",
					"description": "0-based index of the chunk to read",
					"minimum":     0,
				},
			},
			Required: []string{"chunk_index"},
		},
	}
}

// pageStatusTool returns the tool definition for page_status
func pageStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "page_status",
		Description: "Report the current page session: source URL, total chunks, the cursor (last chunk delivered), and whether more chunks remain. Takes no parameters.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// extractNewsArticleTool returns the tool definition for extract_news_article
func extractNewsArticleTool() mcp.Tool {
	return mcp.Tool{
		Name:        "extract_news_article",
		Description: "Extract the full text of a news article or blog post, with title, author, and publication date when include_metadata is set.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"article_url": map[string]interface{}{
					"type":        "string",
					"description": "URL of the article",
				},
				"include_metadata": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include author and date",
					"default":     true,
				},
			},
			Required: []string{"article_url"},
		},
	}
}

// scrapeProductTool returns the tool definition for scrape_product
func scrapeProductTool() mcp.Tool {
	return mcp.Tool{
		Name:        "scrape_product",
		Description: "Extract product details (name, price, description, availability) from an e-commerce page, with up to five reviews when include_reviews is set.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"product_url": map[string]interface{}{
					"type":        "string",
					"description": "URL of the product page",
				},
				"include_reviews": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include review texts",
					"default":     false,
				},
			},
			Required: []string{"product_url"},
		},
	}
}

// scrapeSocialProfileTool returns the tool definition for scrape_social_profile
func scrapeSocialProfileTool() mcp.Tool {
	return mcp.Tool{
		Name:        "scrape_social_profile",
		Description: "Extract publicly visible information (name, bio) from a social media profile page.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"platform": map[string]interface{}{
					"type":        "string",
					"description": "Platform name (e.g. twitter, linkedin)",
				},
				"profile_url": map[string]interface{}{
					"type":        "string",
					"description": "URL of the profile page",
				},
			},
			Required: []string{"platform", "profile_url"},
		},
	}
}
