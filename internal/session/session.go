package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

// Session holds the server-side state for one fetched document under
// active exploration: its chunk list, the navigation cursor, and any
// in-progress search. Sessions are created and owned by the Registry;
// chunk data and full text are immutable after creation, and the only
// permitted mutations are cursor movement, search-state updates, and
// access-time touches.
type Session struct {
	mu sync.RWMutex

	// Identification
	id        string
	sourceURL string

	// Content (immutable after creation)
	text   []rune
	chunks []types.Chunk

	// Navigation
	cursor int

	// Search
	search *searchState

	// Lifecycle
	createdAt    time.Time
	lastAccessed time.Time
	expired      bool
}

// searchState tracks resumable search progress for one query. A nil
// pointer on the session means no search has been issued; a state whose
// delivery index has reached the end of the offset list means the
// search is exhausted. The two are never conflated: only the former
// produces ErrNoActiveSearch.
type searchState struct {
	query    string
	queryLen int // rune length of query
	offsets  []int
	next     int // matches already delivered
}

// MatchBatch is one reserved slice of a session's match list, handed to
// the search engine for snippet assembly. Offsets holds the absolute
// rune positions reserved by this call, in ascending order.
type MatchBatch struct {
	Query    string
	QueryLen int
	Offsets  []int
	Start    int // index of the first reserved match within the full list
	Total    int
	HasMore  bool
}

func newSession(url, text string, chunks []types.Chunk, now time.Time) *Session {
	return &Session{
		id:           uuid.NewString(),
		sourceURL:    url,
		text:         []rune(text),
		chunks:       chunks,
		cursor:       0,
		createdAt:    now,
		lastAccessed: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SourceURL returns the URL the session's document was fetched from.
func (s *Session) SourceURL() string {
	return s.sourceURL
}

// Runes returns the full extracted text as runes. The slice is shared
// and must not be modified.
func (s *Session) Runes() []rune {
	return s.text
}

// Chunks returns the session's chunk list. The slice is shared and
// must not be modified.
func (s *Session) Chunks() []types.Chunk {
	return s.chunks
}

// ChunkCount returns the number of chunks in the session.
func (s *Session) ChunkCount() int {
	return len(s.chunks)
}

// Cursor returns the index of the most recently delivered chunk.
func (s *Session) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// Advance moves the cursor to the next chunk and returns it. When the
// cursor already points at the last chunk, ok is false and the cursor
// does not move, so calls past the end are idempotent.
func (s *Session) Advance() (types.Chunk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cursor + 1
	if next >= len(s.chunks) {
		return types.Chunk{}, false
	}

	chunk := s.chunks[next]
	s.cursor = next
	return chunk, true
}

// ResetSearch replaces any previous search state with a fresh one for
// query and reserves up to max matches starting at the head of the
// offset list. offsets must be the complete ascending match list for
// query over the session text.
func (s *Session) ResetSearch(query string, offsets []int, max int) MatchBatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.search = &searchState{
		query:    query,
		queryLen: len([]rune(query)),
		offsets:  offsets,
	}
	return s.search.take(max)
}

// ContinueSearch reserves up to max undelivered matches from the
// current search state. It fails with ErrNoActiveSearch when no search
// has been issued on this session; an exhausted search returns an
// empty batch with HasMore false instead.
func (s *Session) ContinueSearch(max int) (MatchBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.search == nil {
		return MatchBatch{}, types.ErrNoActiveSearch
	}
	return s.search.take(max), nil
}

// take reserves up to max offsets starting at the delivery index and
// commits the index past them. Caller holds the session lock.
func (st *searchState) take(max int) MatchBatch {
	start := st.next
	end := start + max
	if end > len(st.offsets) {
		end = len(st.offsets)
	}
	if max <= 0 {
		end = start
	}
	st.next = end

	return MatchBatch{
		Query:    st.query,
		QueryLen: st.queryLen,
		Offsets:  st.offsets[start:end],
		Start:    start,
		Total:    len(st.offsets),
		HasMore:  end < len(st.offsets),
	}
}

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastAccessedAt returns the time of the most recent touch.
func (s *Session) LastAccessedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAccessed
}

// touch updates the access time. Expired sessions are never revived.
func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.expired {
		s.lastAccessed = now
	}
}

// expire marks the session stale, reporting whether this call made the
// transition. Data is left intact so callers that obtained the session
// before expiry can finish against it.
func (s *Session) expire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expired {
		return false
	}
	s.expired = true
	return true
}

// staleAt reports whether the session is expired, or idle longer than
// timeout as of now.
func (s *Session) staleAt(now time.Time, timeout time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expired || now.Sub(s.lastAccessed) > timeout
}
