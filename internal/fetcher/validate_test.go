package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/pagereader-mcp/pkg/types"
)

func TestValidateURL_Allowed(t *testing.T) {
	urls := []string{
		"https://example.com",
		"https://example.com/path?q=1",
		"http://news.example.org/article/123",
		"https://93.184.216.34/",
	}

	for _, u := range urls {
		assert.NoError(t, ValidateURL(u), u)
	}
}

func TestValidateURL_BlockedSchemes(t *testing.T) {
	urls := []string{
		"file:///etc/passwd",
		"ftp://example.com/file",
		"javascript:alert(1)",
		"gopher://example.com",
	}

	for _, u := range urls {
		assert.ErrorIs(t, ValidateURL(u), ErrUnsafeURL, u)
	}
}

func TestValidateURL_BlockedHosts(t *testing.T) {
	urls := []string{
		"http://localhost/",
		"http://LOCALHOST:9000/",
		"http://app.localhost/",
		"http://127.0.0.1/",
		"http://0.0.0.0/",
		"http://10.0.0.5/internal",
		"http://192.168.1.1/router",
		"http://172.16.0.1/",
		"http://169.254.169.254/latest/meta-data",
		"http://[::1]/",
	}

	for _, u := range urls {
		assert.ErrorIs(t, ValidateURL(u), ErrUnsafeURL, u)
	}
}

func TestValidateURL_Malformed(t *testing.T) {
	var invalidErr *types.InvalidInputError

	err := ValidateURL("")
	require.Error(t, err)
	assert.ErrorAs(t, err, &invalidErr)

	err = ValidateURL("http://")
	require.Error(t, err)
	assert.ErrorAs(t, err, &invalidErr)
}
