// Package navigator serves sequential and random-access chunk reads
// against a session's chunk list.
//
// Reading never re-fetches or re-chunks anything: the navigator is a
// cursor over chunks the session already holds. Advance moves the
// cursor forward one chunk at a time; ReadChunk is a pure lookup that
// leaves the cursor alone. Running off the end of the document is a
// normal outcome, not an error, and is idempotent: once the cursor sits
// on the last chunk, Advance keeps reporting end-of-content without
// side effects.
package navigator

import (
	"github.com/dshills/pagereader-mcp/internal/session"
	"github.com/dshills/pagereader-mcp/pkg/types"
)

// ReadChunk returns the chunk at index without moving the cursor.
// Indexes outside [0, ChunkCount) fail with a ChunkRangeError carrying
// the valid range so the caller can self-correct.
func ReadChunk(s *session.Session, index int) (types.Chunk, error) {
	chunks := s.Chunks()
	if index < 0 || index >= len(chunks) {
		return types.Chunk{}, &types.ChunkRangeError{Index: index, Total: len(chunks)}
	}
	return chunks[index], nil
}

// Advance delivers the chunk after the cursor and commits the cursor to
// it. ok is false when the cursor already points at the last chunk; the
// cursor stays put and nothing else changes.
func Advance(s *session.Session) (types.Chunk, bool) {
	return s.Advance()
}

// HasMore reports whether chunks remain beyond the cursor.
func HasMore(s *session.Session) bool {
	return s.Cursor() < s.ChunkCount()-1
}

// Status reports the session's navigation position.
func Status(s *session.Session) types.PageStatus {
	cursor := s.Cursor()
	total := s.ChunkCount()
	return types.PageStatus{
		URL:           s.SourceURL(),
		Cursor:        cursor,
		TotalChunks:   total,
		HasMoreChunks: cursor < total-1,
	}
}
