package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document parses an HTML document and returns its title and visible
// body text. Script, style, and noscript subtrees are skipped, as is
// everything inside head; runs of whitespace collapse to single spaces.
func Document(htmlSrc string) (title, text string) {
	doc, err := html.Parse(strings.NewReader(htmlSrc))
	if err != nil {
		return "", ""
	}

	var sb strings.Builder
	var walk func(n *html.Node, inHead bool)
	walk = func(n *html.Node, inHead bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "head":
				inHead = true
			case "title":
				if n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
		}
		if n.Type == html.TextNode && !inHead {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inHead)
		}
	}
	walk(doc, false)

	return title, strings.Join(strings.Fields(sb.String()), " ")
}

// Text returns only the visible body text of an HTML document.
func Text(htmlSrc string) string {
	_, text := Document(htmlSrc)
	return text
}

// firstText returns the trimmed text of the first selector in the chain
// that matches a non-empty element.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
