package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

// MaxReviews bounds how many reviews a product extraction returns.
const MaxReviews = 5

// Selector chains for e-commerce product pages, tried in order.
var (
	productNameSelectors = []string{
		"[data-testid='product-title']", ".product-title", ".product-name",
		"h1", "[data-testid='title']", ".title",
	}
	productPriceSelectors = []string{
		"[data-testid='price']", ".price", ".product-price",
		".current-price", "[class*='price']",
	}
	productDescriptionSelectors = []string{
		".product-description", ".description", ".product-details",
		"[data-testid='description']",
	}
	productAvailabilitySelectors = []string{
		".availability", ".stock", ".in-stock", "[data-testid*='stock']",
	}
	productReviewSelectors = []string{
		".review", ".review-item", "[data-testid*='review']", ".customer-review",
	}
)

// Product extracts name, price, description, and availability from an
// e-commerce product page, plus up to MaxReviews review texts when
// includeReviews is set. Missing fields come back empty rather than
// failing the whole extraction.
func Product(pageURL, htmlSrc string, includeReviews bool) (*types.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse product page: %w", err)
	}

	prod := &types.Product{
		URL:          pageURL,
		Name:         firstText(doc, productNameSelectors),
		Price:        firstText(doc, productPriceSelectors),
		Description:  firstText(doc, productDescriptionSelectors),
		Availability: firstText(doc, productAvailabilitySelectors),
	}

	if includeReviews {
		prod.Reviews = collectReviews(doc)
	}

	return prod, nil
}

// collectReviews gathers review texts from the first selector chain
// entry that matches anything.
func collectReviews(doc *goquery.Document) []string {
	reviews := []string{}
	for _, selector := range productReviewSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if text := normalizeSpace(sel.Text()); text != "" {
				reviews = append(reviews, text)
			}
			return len(reviews) < MaxReviews
		})
		if len(reviews) > 0 {
			break
		}
	}
	return reviews
}
