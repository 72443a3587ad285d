package types

import "errors"

// Chunk represents one fixed-size slice of a document's extracted text.
// Offsets are rune offsets into the source text, EndOffset exclusive.
// Concatenating all chunks of a document in index order reproduces the
// source text exactly.
type Chunk struct {
	// Position
	Index       int
	StartOffset int
	EndOffset   int

	// Content
	Text string
}

// Len returns the chunk length in runes.
func (c *Chunk) Len() int {
	return c.EndOffset - c.StartOffset
}

// Contains reports whether the absolute rune offset falls within this chunk.
func (c *Chunk) Contains(offset int) bool {
	return offset >= c.StartOffset && offset < c.EndOffset
}

// Validate checks the chunk's internal consistency.
func (c *Chunk) Validate() error {
	if c.Index < 0 {
		return errors.New("chunk index cannot be negative")
	}

	if c.StartOffset < 0 {
		return errors.New("start offset cannot be negative")
	}

	if c.EndOffset < c.StartOffset {
		return errors.New("end offset must be >= start offset")
	}

	return nil
}
