// Package searcher finds every occurrence of a query in a session's
// text and pages the results out in resumable batches.
//
// # Basic Usage
//
//	eng := searcher.NewFromEnv()
//
//	batch, err := eng.Search(sess, "climate", 5)
//	// batch.TotalMatches, batch.Snippets[0].Position, ...
//
//	for batch.HasMore {
//	    batch, err = eng.Continue(sess, 5)
//	    ...
//	}
//
// # Matching Semantics
//
// Search scans the complete document text, not individual chunks, so a
// match spanning a chunk boundary is still found. Matching is
// case-insensitive via per-rune simple case mapping, which preserves
// rune counts and keeps every reported offset valid in the source
// text. The scan is non-overlapping: after a match at offset p of
// length L it resumes at p+L, so "aa" occurs in "aaaa" at offsets 0
// and 2 only.
//
// A new Search always recomputes the match list and replaces the
// session's search state; Continue never recomputes, it only delivers
// the next slice of the list computed by the last Search.
//
// # Snippets
//
// Each result carries a context snippet cut from the full text: up to
// SnippetRadius runes on each side of the match, with the matched span
// delimited in brackets:
//
//	...sea levels continue to [rise] across the region...
//
// The chunk index reported with each snippet is derived from the chunk
// offset table by binary search; chunk text is never re-scanned.
package searcher
