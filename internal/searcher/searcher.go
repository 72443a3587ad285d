package searcher

import (
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/pagereader-mcp/internal/chunker"
	"github.com/dshills/pagereader-mcp/internal/session"
	"github.com/dshills/pagereader-mcp/pkg/types"
)

const (
	// DefaultMaxResults is the batch size used when the caller does not
	// request one
	DefaultMaxResults = 5

	// MaxResultsLimit caps a single batch regardless of the request
	MaxResultsLimit = 100

	// SnippetRadius is the number of context runes kept on each side of
	// a match
	SnippetRadius = 100

	// EnvMaxResults overrides the default batch size
	EnvMaxResults = "PAGEREADER_MAX_RESULTS"
)

// Engine executes exact substring searches over a session's full text
// and pages the matches out in bounded batches. Matching is
// case-insensitive and non-overlapping: after a match at offset p of
// length L the scan resumes at p+L, so "aa" occurs twice in "aaaa",
// not three times.
type Engine struct {
	defaultMax int
}

// New creates an Engine with the given default batch size. Non-positive
// values fall back to DefaultMaxResults.
func New(defaultMax int) *Engine {
	if defaultMax <= 0 {
		defaultMax = DefaultMaxResults
	}
	return &Engine{defaultMax: defaultMax}
}

// NewFromEnv creates an Engine configured from the environment.
func NewFromEnv() *Engine {
	if v := os.Getenv(EnvMaxResults); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return New(n)
		}
	}
	return New(DefaultMaxResults)
}

// Search computes the full match list for query over the session's
// text, replaces any previous search state, and delivers the first
// batch of up to maxResults snippets. An empty query is a caller
// mistake and fails with an InvalidInputError; a query with no matches
// is a normal outcome with TotalMatches 0.
func (e *Engine) Search(s *session.Session, query string, maxResults int) (*types.SearchBatch, error) {
	q := []rune(query)
	if len(q) == 0 {
		return nil, types.NewInvalidInput("search query cannot be empty")
	}

	offsets := findAll(s.Runes(), q)
	mb := s.ResetSearch(query, offsets, e.normalize(maxResults))
	return e.assemble(s, mb), nil
}

// Continue delivers the next batch of up to maxResults snippets from
// the session's current search state, without recomputing matches. It
// fails with ErrNoActiveSearch when no search has been issued; an
// exhausted search yields an empty batch with HasMore false.
func (e *Engine) Continue(s *session.Session, maxResults int) (*types.SearchBatch, error) {
	mb, err := s.ContinueSearch(e.normalize(maxResults))
	if err != nil {
		return nil, err
	}
	return e.assemble(s, mb), nil
}

// normalize applies the default and the hard cap to a requested batch size.
func (e *Engine) normalize(maxResults int) int {
	if maxResults <= 0 {
		maxResults = e.defaultMax
	}
	if maxResults > MaxResultsLimit {
		maxResults = MaxResultsLimit
	}
	return maxResults
}

// assemble builds the client-facing batch for a reserved slice of the
// match list. Snippets are cut from the full text so context never
// truncates at a chunk boundary, and each match's chunk index comes
// from the chunk offset table, not a re-scan of chunk text.
func (e *Engine) assemble(s *session.Session, mb session.MatchBatch) *types.SearchBatch {
	text := s.Runes()
	chunks := s.Chunks()

	snippets := make([]types.Snippet, 0, len(mb.Offsets))
	for _, pos := range mb.Offsets {
		snippets = append(snippets, types.Snippet{
			ChunkIndex: chunker.Locate(chunks, pos),
			Position:   pos,
			Text:       buildSnippet(text, pos, mb.QueryLen),
		})
	}

	return &types.SearchBatch{
		Query:        mb.Query,
		TotalMatches: mb.Total,
		Returned:     len(snippets),
		HasMore:      mb.HasMore,
		Snippets:     snippets,
	}
}

// findAll returns the ascending rune offsets of every case-insensitive,
// non-overlapping occurrence of query in text.
func findAll(text, query []rune) []int {
	if len(query) == 0 || len(query) > len(text) {
		return nil
	}

	lt := lowerRunes(text)
	lq := lowerRunes(query)

	var offsets []int
	for i := 0; i+len(lq) <= len(lt); {
		if matchAt(lt, lq, i) {
			offsets = append(offsets, i)
			i += len(lq)
		} else {
			i++
		}
	}
	return offsets
}

// matchAt reports whether needle occurs in haystack at offset i.
func matchAt(haystack, needle []rune, i int) bool {
	for j, r := range needle {
		if haystack[i+j] != r {
			return false
		}
	}
	return true
}

// lowerRunes lowercases per rune. Simple case mapping keeps one rune
// per rune, so offsets into the lowered text line up with the source.
func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// buildSnippet cuts a fixed-radius window around the match at pos and
// delimits the matched span in brackets. The window is clamped to the
// text bounds; the leading and trailing ellipses are always present.
func buildSnippet(text []rune, pos, queryLen int) string {
	start := pos - SnippetRadius
	if start < 0 {
		start = 0
	}
	end := pos + queryLen + SnippetRadius
	if end > len(text) {
		end = len(text)
	}

	var sb strings.Builder
	sb.WriteString("...")
	sb.WriteString(string(text[start:pos]))
	sb.WriteString("[")
	sb.WriteString(string(text[pos : pos+queryLen]))
	sb.WriteString("]")
	sb.WriteString(string(text[pos+queryLen : end]))
	sb.WriteString("...")
	return sb.String()
}
