package types

import "errors"

// Snippet is a bounded window of text surrounding one search match.
type Snippet struct {
	// Location
	ChunkIndex int // chunk the match's start offset falls within
	Position   int // absolute rune offset of the match in the full text

	// Content
	Text string // context window with the matched span delimited as [match]
}

// SearchBatch is one bounded page of substring-match results with
// continuation metadata.
type SearchBatch struct {
	// Query
	Query string

	// Pagination
	TotalMatches int
	Returned     int
	HasMore      bool

	// Results, in ascending Position order
	Snippets []Snippet
}

// Validate checks the batch's internal consistency.
func (b *SearchBatch) Validate() error {
	if b.Returned != len(b.Snippets) {
		return errors.New("returned count must match snippet count")
	}

	if b.Returned > b.TotalMatches {
		return errors.New("returned count cannot exceed total matches")
	}

	for i := 1; i < len(b.Snippets); i++ {
		if b.Snippets[i].Position <= b.Snippets[i-1].Position {
			return errors.New("snippets must be in ascending position order")
		}
	}

	return nil
}
