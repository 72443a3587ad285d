package types

import (
	"errors"
	"fmt"
)

// Domain errors shared across components
var (
	// Session lifecycle errors
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionExpired  = errors.New("session expired")

	// Search lifecycle errors
	ErrNoActiveSearch = errors.New("no active search")
)

// InvalidInputError reports a malformed caller argument. It is a caller
// mistake and is never retried.
type InvalidInputError struct {
	Reason string
}

// Error implements the error interface
func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// NewInvalidInput creates an InvalidInputError with the given reason.
func NewInvalidInput(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// ChunkRangeError reports a chunk index outside the valid range. It
// carries the range so the caller can self-correct.
type ChunkRangeError struct {
	Index int
	Total int
}

// Error implements the error interface
func (e *ChunkRangeError) Error() string {
	return fmt.Sprintf("chunk index %d is out of range, available chunks: 0 to %d", e.Index, e.Total-1)
}
