package chunker

import (
	"github.com/dshills/pagereader-mcp/pkg/types"
)

const (
	// DefaultChunkSize is the chunk length in runes used when no size is configured
	DefaultChunkSize = 5000
)

// Split divides text into consecutive non-overlapping chunks of exactly
// size runes. The final chunk holds the remainder and may be shorter.
// Empty text yields a single empty chunk, never zero chunks, so a
// session over an empty document still has a valid cursor position.
//
// Split is a pure function of (text, size): no character is altered,
// reordered, or duplicated, and concatenating the chunk texts in index
// order reproduces text exactly.
func Split(text string, size int) ([]types.Chunk, error) {
	if size <= 0 {
		return nil, types.NewInvalidInput("chunk size must be positive, got %d", size)
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return []types.Chunk{{Index: 0, StartOffset: 0, EndOffset: 0, Text: ""}}, nil
	}

	chunks := make([]types.Chunk, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, types.Chunk{
			Index:       len(chunks),
			StartOffset: start,
			EndOffset:   end,
			Text:        string(runes[start:end]),
		})
	}

	return chunks, nil
}

// Locate returns the index of the chunk whose offset range contains the
// absolute rune offset, using binary search over the offset table. It
// returns -1 when the offset falls outside every chunk.
func Locate(chunks []types.Chunk, offset int) int {
	lo, hi := 0, len(chunks)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case offset < chunks[mid].StartOffset:
			hi = mid - 1
		case offset >= chunks[mid].EndOffset:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}
