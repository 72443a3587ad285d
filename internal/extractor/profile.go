package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

// Selector chains for social profile pages, tried in order. The
// data-testid entries match Twitter/X markup; the rest are generic.
var (
	profileNameSelectors = []string{
		"[data-testid='ocf-headline']", ".profile h1", "h1",
		".username", "[data-testid='UserProfileHeader_Items']",
	}
	profileBioSelectors = []string{
		".bio", "[data-testid='UserProfileHeader_Items']",
		".profile p", ".description",
	}
)

// Profile extracts publicly visible name and bio from a social media
// profile page. platform is carried through verbatim for the caller;
// extraction itself is selector-driven and platform-agnostic.
func Profile(platform, pageURL, htmlSrc string) (*types.Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile page: %w", err)
	}

	return &types.Profile{
		Platform: platform,
		URL:      pageURL,
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		Name:     firstText(doc, profileNameSelectors),
		Bio:      firstText(doc, profileBioSelectors),
	}, nil
}
