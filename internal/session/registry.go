package session

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/dshills/pagereader-mcp/internal/chunker"
	"github.com/dshills/pagereader-mcp/pkg/types"
)

const (
	// DefaultTimeout is the idle period after which a session expires
	DefaultTimeout = 30 * time.Minute

	// EnvChunkSize overrides the chunk size in runes
	EnvChunkSize = "PAGEREADER_CHUNK_SIZE"

	// EnvTimeout overrides the session idle timeout, as plain seconds
	// ("1800") or a Go duration ("30m")
	EnvTimeout = "PAGEREADER_SESSION_TIMEOUT"
)

// Config holds the registry tunables.
type Config struct {
	ChunkSize int
	Timeout   time.Duration
}

// DefaultConfig returns the built-in tunables.
func DefaultConfig() Config {
	return Config{
		ChunkSize: chunker.DefaultChunkSize,
		Timeout:   DefaultTimeout,
	}
}

// ConfigFromEnv returns DefaultConfig with any environment overrides
// applied. Unparseable or non-positive values keep the default.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvChunkSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ChunkSize = n
		}
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		if d := parseTimeout(v); d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// parseTimeout accepts plain seconds ("1800") or a duration ("30m").
func parseTimeout(v string) time.Duration {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

// Registry is the process-wide owner of the active session. It holds at
// most one live session at a time: starting a new one replaces the
// previous, which stays valid for callers that already hold it but is
// unreachable through the registry. Expiry is checked lazily on access,
// never by a background sweeper, so the call that discovers staleness
// is the one that evicts.
type Registry struct {
	mu     sync.RWMutex
	active *Session
	cfg    Config
}

// NewRegistry creates an empty registry with the given tunables.
func NewRegistry(cfg Config) *Registry {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Registry{cfg: cfg}
}

// ChunkSize returns the configured chunk size in runes.
func (r *Registry) ChunkSize() int {
	return r.cfg.ChunkSize
}

// Timeout returns the configured idle timeout.
func (r *Registry) Timeout() time.Duration {
	return r.cfg.Timeout
}

// Start chunks text and installs a fresh session for it, replacing any
// previously active session. The replaced session is not destroyed
// synchronously; in-flight calls holding it drain against its intact
// data while new lookups see only the fresh session.
func (r *Registry) Start(url, text string) (*Session, error) {
	chunks, err := chunker.Split(text, r.cfg.ChunkSize)
	if err != nil {
		return nil, err
	}

	s := newSession(url, text, chunks, time.Now())

	r.mu.Lock()
	r.active = s
	r.mu.Unlock()

	return s, nil
}

// Current returns the active session, touching its access time. It
// fails with ErrNoActiveSession when nothing has been started, and
// with ErrSessionExpired when the active session has been idle past
// the timeout; the discovering call performs the eviction, and every
// later call keeps failing the same way until a new Start.
func (r *Registry) Current() (*Session, error) {
	r.mu.RLock()
	s := r.active
	r.mu.RUnlock()

	if s == nil {
		return nil, types.ErrNoActiveSession
	}

	now := time.Now()
	if s.staleAt(now, r.cfg.Timeout) {
		s.expire()
		return nil, types.ErrSessionExpired
	}

	s.touch(now)
	return s, nil
}

// Touch updates the session's access time.
func (r *Registry) Touch(s *Session) {
	s.touch(time.Now())
}

// EvictIfExpired marks the active session expired if it has been idle
// past the timeout as of now, reporting whether an eviction happened.
func (r *Registry) EvictIfExpired(now time.Time) bool {
	r.mu.RLock()
	s := r.active
	r.mu.RUnlock()

	if s == nil || !s.staleAt(now, r.cfg.Timeout) {
		return false
	}

	return s.expire()
}

// Clear drops the active session. Used at shutdown; session state is
// never persisted.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.active = nil
	r.mu.Unlock()
}
