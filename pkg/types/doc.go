// Package types provides shared type definitions for the PageReader MCP server.
//
// This package defines domain types used across multiple components of
// PageReader, including chunks, search batches, fetched pages, and
// extraction results.
//
// # Core Types
//
// Chunk represents one fixed-size slice of a document's extracted text,
// addressable by index. Offsets are rune offsets so multibyte pages
// chunk and search consistently:
//
//	chunk := types.Chunk{
//	    Index:       0,
//	    StartOffset: 0,
//	    EndOffset:   5000,
//	    Text:        pageText[:5000],
//	}
//
// SearchBatch represents one bounded page of substring-match results
// with continuation metadata:
//
//	batch := types.SearchBatch{
//	    Query:        "climate",
//	    TotalMatches: 42,
//	    Returned:     5,
//	    HasMore:      true,
//	    Snippets:     snippets,
//	}
//
// Each Snippet carries the chunk index its match falls within, the
// absolute match position, and a context window with the matched span
// delimited in brackets.
//
// # Error Taxonomy
//
// Session and search lifecycle violations surface as sentinel errors
// checked with errors.Is:
//
//	if errors.Is(err, types.ErrSessionExpired) {
//	    // caller must visit a page again
//	}
//
// Malformed arguments and out-of-range chunk reads surface as typed
// errors checked with errors.As, carrying enough data for the caller
// to self-correct:
//
//	var rangeErr *types.ChunkRangeError
//	if errors.As(err, &rangeErr) {
//	    fmt.Println("valid chunks:", 0, "to", rangeErr.Total-1)
//	}
//
// # Extraction Results
//
// Page, Article, Product, and Profile carry fetched and extracted web
// content between the fetcher, extractor, cache, and tool layers. JSON
// tags on extraction results match the wire payloads returned to MCP
// clients.
package types
