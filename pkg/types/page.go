package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Page represents one fetched web page before extraction.
type Page struct {
	// Identification
	URL   string
	Title string

	// Content
	HTML string

	// Metadata
	FetchedAt time.Time
}

// CacheKey returns the SHA-256 hex digest of the page URL, used to key
// cached extractions.
func (p *Page) CacheKey() string {
	return URLKey(p.URL)
}

// URLKey returns the SHA-256 hex digest of a URL.
func URLKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// PageStatus reports where a session's navigation stands.
type PageStatus struct {
	URL           string `json:"url"`
	Cursor        int    `json:"cursor"`
	TotalChunks   int    `json:"total_chunks"`
	HasMoreChunks bool   `json:"has_more_chunks"`
}

// WebResult is a single web search hit.
type WebResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Article holds content extracted from a news article or blog post.
type Article struct {
	// Identification
	URL   string `json:"url"`
	Title string `json:"title"`

	// Content
	Content string `json:"content"`

	// Metadata (populated only when requested)
	Author string `json:"author"`
	Date   string `json:"date"`
}

// Product holds details extracted from an e-commerce product page.
type Product struct {
	// Identification
	URL  string `json:"url"`
	Name string `json:"name"`

	// Details
	Price        string `json:"price"`
	Description  string `json:"description"`
	Availability string `json:"availability"`

	// Reviews (populated only when requested)
	Reviews []string `json:"reviews,omitempty"`
}

// Profile holds public information extracted from a social media profile.
type Profile struct {
	// Identification
	Platform string `json:"platform"`
	URL      string `json:"url"`

	// Details
	Title string `json:"title"`
	Name  string `json:"name,omitempty"`
	Bio   string `json:"bio,omitempty"`
}
