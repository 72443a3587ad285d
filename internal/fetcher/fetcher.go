package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

const (
	// DefaultTimeout bounds a single page fetch end to end
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every request
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultRequestsPerSecond limits the outbound request rate
	DefaultRequestsPerSecond = 2

	// DefaultBurst is the rate limiter burst size
	DefaultBurst = 4

	// MaxBodyBytes caps how much of a response body is read
	MaxBodyBytes = 10 << 20 // 10 MB

	// EnvTimeout overrides the fetch timeout, as a Go duration ("45s")
	EnvTimeout = "PAGEREADER_FETCH_TIMEOUT"

	// EnvUserAgent overrides the request User-Agent
	EnvUserAgent = "PAGEREADER_USER_AGENT"

	// EnvRequestsPerSecond overrides the outbound rate limit
	EnvRequestsPerSecond = "PAGEREADER_FETCH_RPS"
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Temporary reports whether the failure is worth retrying. Server-side
// failures and throttling are transient; client errors are not.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Config holds the fetcher tunables.
type Config struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
	Retry             RetryConfig
}

// DefaultConfig returns the built-in tunables.
func DefaultConfig() Config {
	return Config{
		Timeout:           DefaultTimeout,
		UserAgent:         DefaultUserAgent,
		RequestsPerSecond: DefaultRequestsPerSecond,
		Burst:             DefaultBurst,
		Retry:             DefaultRetryConfig(),
	}
}

// ConfigFromEnv returns DefaultConfig with any environment overrides
// applied. Unparseable or non-positive values keep the default.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}

	if v := os.Getenv(EnvRequestsPerSecond); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RequestsPerSecond = f
		}
	}

	return cfg
}

// Fetcher retrieves raw page HTML over plain HTTP. It never executes
// JavaScript. Outbound requests share one rate limiter, and concurrent
// fetches of the same URL are collapsed into a single request whose
// result every waiter receives.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	group     singleflight.Group
	userAgent string
	retry     RetryConfig
}

// New creates a Fetcher with the given tunables. Zero-value fields fall
// back to the defaults.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.Retry.MaxRetries <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		userAgent: cfg.UserAgent,
		retry:     cfg.Retry,
	}
}

// NewFromEnv creates a Fetcher configured from the environment.
func NewFromEnv() *Fetcher {
	return New(ConfigFromEnv())
}

// Fetch validates rawURL and retrieves its HTML. Transient failures
// are retried with exponential backoff; client errors are not.
// Concurrent calls for the same URL share one in-flight request.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*types.Page, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	v, err, _ := f.group.Do(rawURL, func() (interface{}, error) {
		return f.fetch(ctx, rawURL)
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.Page), nil
}

// fetch performs the rate-limited, retried request for one URL.
func (f *Fetcher) fetch(ctx context.Context, rawURL string) (*types.Page, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return retryWithBackoff(ctx, f.retry, func() (*types.Page, error) {
		return f.get(ctx, rawURL)
	})
}

// get issues a single GET request and reads the body.
func (f *Fetcher) get(ctx context.Context, rawURL string) (*types.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &types.Page{
		URL:       rawURL,
		HTML:      string(body),
		FetchedAt: time.Now(),
	}, nil
}
