// Package extractor turns raw page HTML into text the rest of the
// server can chunk, search, and return.
//
// Document is the general path: a visible-text walk of the parsed tree
// that skips script/style/noscript and collapses whitespace, roughly
// what a browser would show for the page body. The specialized
// extractors (Article, Product, Profile) target particular page shapes
// with selector chains, and Article additionally runs readability for
// main-content detection.
//
// All extractors are pure functions of the HTML string; they never
// touch the network.
package extractor
