// Package chunker divides extracted page text into fixed-size ordered chunks.
//
// Chunks are the unit of pagination for page content: a client reads a
// large page one chunk at a time instead of receiving the whole text in
// a single response.
//
// # Basic Usage
//
//	chunks, err := chunker.Split(pageText, chunker.DefaultChunkSize)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, chunk := range chunks {
//	    fmt.Printf("Chunk %d: runes %d-%d\n",
//	        chunk.Index, chunk.StartOffset, chunk.EndOffset)
//	}
//
// # Chunking Semantics
//
// Every chunk except the last holds exactly the configured number of
// runes; the last holds the remainder. Splitting is lossless:
// concatenating chunk texts in index order reproduces the source text
// exactly. An empty document yields one empty chunk rather than zero,
// so downstream cursor logic never sees an out-of-range position on an
// otherwise valid session.
//
// # Offsets
//
// Chunk boundaries and all offsets are counted in runes, not bytes.
// Pages with multibyte characters would otherwise chunk at different
// positions than the search engine reports matches at.
//
// Locate maps an absolute rune offset back to the chunk containing it
// via binary search over the chunk offset table:
//
//	idx := chunker.Locate(chunks, matchOffset)
package chunker
