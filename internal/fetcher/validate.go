package fetcher

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

// ErrUnsafeURL is returned for URLs that point at hosts the server must
// never dial: loopback, private, link-local, or unspecified addresses.
var ErrUnsafeURL = errors.New("unsafe URL")

// ValidateURL rejects URLs before any network dial happens. Only http
// and https schemes are allowed, and hosts that resolve to internal
// address ranges are refused so a remote client cannot use the server
// to probe its own network.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return types.NewInvalidInput("url cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return types.NewInvalidInput("malformed url %q: %v", rawURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q is not allowed", ErrUnsafeURL, u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return types.NewInvalidInput("url %q has no host", rawURL)
	}

	if strings.EqualFold(host, "localhost") || strings.HasSuffix(strings.ToLower(host), ".localhost") {
		return fmt.Errorf("%w: host %q is local", ErrUnsafeURL, host)
	}

	if ip := net.ParseIP(host); ip != nil && isInternalIP(ip) {
		return fmt.Errorf("%w: address %s is internal", ErrUnsafeURL, ip)
	}

	return nil
}

// isInternalIP reports whether ip belongs to a range that must not be
// fetched on a client's behalf.
func isInternalIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast()
}
