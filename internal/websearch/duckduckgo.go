package websearch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

// duckDuckGoEndpoint is the HTML (no JavaScript) search frontend.
const duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGo scrapes the DuckDuckGo HTML endpoint. No API key is
// required; results carry title, URL, and snippet.
type DuckDuckGo struct {
	fetcher PageFetcher
}

// Compile-time interface check
var _ Searcher = (*DuckDuckGo)(nil)

// NewDuckDuckGo creates a DuckDuckGo searcher backed by the given fetcher.
func NewDuckDuckGo(f PageFetcher) *DuckDuckGo {
	return &DuckDuckGo{fetcher: f}
}

// Search runs one query and returns up to maxResults hits in rank
// order. An empty or whitespace query yields an empty result set.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]types.WebResult, error) {
	if strings.TrimSpace(query) == "" {
		return []types.WebResult{}, nil
	}
	maxResults = clampMax(maxResults)

	searchURL := duckDuckGoEndpoint + "?q=" + url.QueryEscape(query)
	page, err := d.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	return parseResults(page.HTML, maxResults)
}

// parseResults extracts search hits from the result page HTML.
func parseResults(htmlSrc string, maxResults int) ([]types.WebResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	results := make([]types.WebResult, 0, maxResults)
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		anchor := sel.Find("a.result__a").First()
		href, ok := anchor.Attr("href")
		if !ok {
			return true
		}

		title := strings.TrimSpace(anchor.Text())
		if title == "" {
			return true
		}

		results = append(results, types.WebResult{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").First().Text()),
		})
		return len(results) < maxResults
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's result redirect, which carries
// the target in the uddg query parameter. Plain links pass through.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}

	if target := u.Query().Get("uddg"); target != "" {
		return target
	}

	// Protocol-relative redirect links
	if u.Scheme == "" && u.Host != "" {
		u.Scheme = "https"
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
		return u.String()
	}

	return href
}
