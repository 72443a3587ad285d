// Package session owns the process-wide mapping from "the current page"
// to its exploration state.
//
// A Session holds one fetched document: the full extracted text, its
// chunk list, the navigation cursor, and any in-progress search. The
// Registry holds at most one live session at a time; visiting a new
// page replaces the previous session.
//
// # Basic Usage
//
//	reg := session.NewRegistry(session.ConfigFromEnv())
//
//	sess, err := reg.Start(url, extractedText)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sess, err = reg.Current() // later calls
//	if errors.Is(err, types.ErrSessionExpired) {
//	    // client must visit a page again
//	}
//
// # Lifecycle
//
// A session is created when a fetch completes and its text is chunked.
// Every navigation or search call goes through Current, which refreshes
// the access time. A session idle past the configured timeout is
// evicted lazily by the call that discovers it; there is no background
// sweeper, so eviction can never race an access. Once expired, every
// call keeps failing with ErrSessionExpired until a new Start.
//
// Replacing a session does not destroy the old one synchronously: a
// call that obtained the session before the replacement finishes
// against its intact data. New lookups only ever see the fresh session,
// never a half-replaced one.
//
// # Search State
//
// Resumable search progress lives on the session as a query, the full
// ascending list of match offsets, and a delivery index. "No search
// yet" and "search exhausted" are distinct: only the former fails with
// ErrNoActiveSearch, the latter yields empty batches with HasMore
// false. A new search replaces the state wholesale.
//
// Nothing in this package is persisted; all session state is memory
// resident and lost on process restart.
package session
