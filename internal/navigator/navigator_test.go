package navigator

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/pagereader-mcp/internal/session"
	"github.com/dshills/pagereader-mcp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSession(t *testing.T, text string, chunkSize int) *session.Session {
	t.Helper()
	reg := session.NewRegistry(session.Config{ChunkSize: chunkSize, Timeout: time.Minute})
	sess, err := reg.Start("https://example.com/doc", text)
	require.NoError(t, err)
	return sess
}

func TestReadChunk(t *testing.T) {
	sess := startSession(t, strings.Repeat("A", 5000)+strings.Repeat("B", 5000)+strings.Repeat("C", 2000), 5000)

	chunk, err := ReadChunk(sess, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, chunk.Index)
	assert.Equal(t, strings.Repeat("B", 5000), chunk.Text)

	// A pure lookup never moves the cursor.
	assert.Equal(t, 0, sess.Cursor())
}

func TestReadChunk_OutOfRange(t *testing.T) {
	sess := startSession(t, strings.Repeat("A", 7000), 5000)
	require.Equal(t, 2, sess.ChunkCount())

	for _, index := range []int{-1, -100, 2, 99} {
		_, err := ReadChunk(sess, index)
		require.Error(t, err, "index %d", index)

		var rangeErr *types.ChunkRangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, index, rangeErr.Index)
		assert.Equal(t, 2, rangeErr.Total)
		assert.Contains(t, rangeErr.Error(), "0 to 1")
	}
}

func TestReadChunk_EmptyDocument(t *testing.T) {
	sess := startSession(t, "", 5000)
	require.Equal(t, 1, sess.ChunkCount())

	chunk, err := ReadChunk(sess, 0)
	require.NoError(t, err)
	assert.Equal(t, "", chunk.Text)

	_, err = ReadChunk(sess, 1)
	require.Error(t, err)

	var rangeErr *types.ChunkRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 1, rangeErr.Total)
}

func TestAdvance_WalksToEnd(t *testing.T) {
	sess := startSession(t, strings.Repeat("A", 12000), 5000)

	chunk, ok := Advance(sess)
	require.True(t, ok)
	assert.Equal(t, 1, chunk.Index)

	chunk, ok = Advance(sess)
	require.True(t, ok)
	assert.Equal(t, 2, chunk.Index)

	// The outcome past the last chunk is a signal, not an error, and
	// repeating the call changes nothing.
	for i := 0; i < 3; i++ {
		_, ok = Advance(sess)
		assert.False(t, ok)
		assert.Equal(t, 2, sess.Cursor())
	}
}

func TestHasMore(t *testing.T) {
	sess := startSession(t, strings.Repeat("A", 10000), 5000)

	assert.True(t, HasMore(sess))

	_, ok := Advance(sess)
	require.True(t, ok)
	assert.False(t, HasMore(sess))
}

func TestHasMore_SingleChunk(t *testing.T) {
	sess := startSession(t, "tiny", 5000)
	assert.False(t, HasMore(sess))
}

func TestStatus(t *testing.T) {
	sess := startSession(t, strings.Repeat("A", 12000), 5000)

	status := Status(sess)
	assert.Equal(t, "https://example.com/doc", status.URL)
	assert.Equal(t, 0, status.Cursor)
	assert.Equal(t, 3, status.TotalChunks)
	assert.True(t, status.HasMoreChunks)

	for {
		if _, ok := Advance(sess); !ok {
			break
		}
	}

	status = Status(sess)
	assert.Equal(t, 2, status.Cursor)
	assert.False(t, status.HasMoreChunks)
}
