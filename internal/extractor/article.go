package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

// Selector chains for article pages, tried in order. These cover the
// common news/blog markup conventions; readability runs first and these
// are the fallback when it finds nothing.
var (
	articleTitleSelectors = []string{
		"h1", "h2", ".article-title", ".post-title",
	}
	articleContentSelectors = []string{
		".article-body", ".post-content", ".entry-content",
		".content", "article", ".story-body", ".article-content",
	}
	articleAuthorSelectors = []string{
		".author", ".byline", "[rel='author']",
		".article-author", ".post-author",
	}
	articleDateSelectors = []string{
		"time", ".date", ".publish-date",
		".article-date", "[property*='published']",
	}
)

// Article extracts the body text of a news article or blog post, plus
// title, author, and date when includeMetadata is set. Readability
// handles the main content; selector chains fill whatever it misses,
// and a paragraph join is the last resort so even unconventional markup
// yields something readable.
func Article(pageURL, htmlSrc string, includeMetadata bool) (*types.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article page: %w", err)
	}

	art := &types.Article{URL: pageURL}

	if parsed, perr := url.Parse(pageURL); perr == nil {
		if extracted, rerr := readability.FromReader(strings.NewReader(htmlSrc), parsed); rerr == nil {
			art.Title = strings.TrimSpace(extracted.Title)
			art.Content = normalizeSpace(extracted.TextContent)
			if includeMetadata {
				art.Author = strings.TrimSpace(extracted.Byline)
			}
		}
	}

	if art.Title == "" {
		art.Title = firstText(doc, articleTitleSelectors)
	}
	if art.Title == "" {
		art.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if art.Content == "" {
		art.Content = firstText(doc, articleContentSelectors)
	}
	if art.Content == "" {
		art.Content = joinParagraphs(doc)
	}

	if includeMetadata {
		if art.Author == "" {
			art.Author = firstText(doc, articleAuthorSelectors)
		}
		art.Date = firstText(doc, articleDateSelectors)
	}

	return art, nil
}

// joinParagraphs concatenates every <p> on the page.
func joinParagraphs(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

// normalizeSpace trims and collapses runs of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
