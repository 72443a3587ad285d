package session

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/pagereader-mcp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, chunkSize int, timeout time.Duration) *Registry {
	t.Helper()
	return NewRegistry(Config{ChunkSize: chunkSize, Timeout: timeout})
}

func TestStart_ChunksText(t *testing.T) {
	reg := newTestRegistry(t, 5000, time.Minute)

	sess, err := reg.Start("https://example.com/long", strings.Repeat("A", 12000))
	require.NoError(t, err)

	assert.Equal(t, 3, sess.ChunkCount())
	assert.Equal(t, 0, sess.Cursor())
	assert.Equal(t, "https://example.com/long", sess.SourceURL())
	assert.NotEmpty(t, sess.ID())
}

func TestStart_EmptyText(t *testing.T) {
	reg := newTestRegistry(t, 5000, time.Minute)

	sess, err := reg.Start("https://example.com/empty", "")
	require.NoError(t, err)
	require.Equal(t, 1, sess.ChunkCount())

	chunks := sess.Chunks()
	assert.Equal(t, "", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Len())
}

func TestStart_InvalidChunkSize(t *testing.T) {
	reg := newTestRegistry(t, 0, 0)

	// NewRegistry fills a zero timeout, but a broken chunk size
	// surfaces on use.
	reg.cfg.ChunkSize = -1
	_, err := reg.Start("https://example.com", "text")
	require.Error(t, err)

	var invalid *types.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestStart_ReplacesActiveSession(t *testing.T) {
	reg := newTestRegistry(t, 100, time.Minute)

	first, err := reg.Start("https://example.com/one", "first page")
	require.NoError(t, err)

	second, err := reg.Start("https://example.com/two", "second page")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())

	current, err := reg.Current()
	require.NoError(t, err)
	assert.Equal(t, second.ID(), current.ID())

	// A caller still holding the replaced session drains against its
	// intact data.
	assert.Equal(t, "first page", first.Chunks()[0].Text)
}

func TestCurrent_NoSession(t *testing.T) {
	reg := newTestRegistry(t, 100, time.Minute)

	_, err := reg.Current()
	assert.ErrorIs(t, err, types.ErrNoActiveSession)
}

func TestCurrent_TouchesSession(t *testing.T) {
	reg := newTestRegistry(t, 100, time.Minute)

	sess, err := reg.Start("https://example.com", "hello")
	require.NoError(t, err)
	before := sess.LastAccessedAt()

	time.Sleep(5 * time.Millisecond)
	_, err = reg.Current()
	require.NoError(t, err)

	assert.True(t, sess.LastAccessedAt().After(before))
}

func TestCurrent_Expiry(t *testing.T) {
	reg := newTestRegistry(t, 100, 10*time.Millisecond)

	_, err := reg.Start("https://example.com", "hello")
	require.NoError(t, err)

	_, err = reg.Current()
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	// The discovering call evicts; every later call fails the same
	// way until a new Start.
	_, err = reg.Current()
	assert.ErrorIs(t, err, types.ErrSessionExpired)
	_, err = reg.Current()
	assert.ErrorIs(t, err, types.ErrSessionExpired)

	_, err = reg.Start("https://example.com", "fresh")
	require.NoError(t, err)
	_, err = reg.Current()
	assert.NoError(t, err)
}

func TestEvictIfExpired(t *testing.T) {
	reg := newTestRegistry(t, 100, time.Minute)

	_, err := reg.Start("https://example.com", "hello")
	require.NoError(t, err)

	assert.False(t, reg.EvictIfExpired(time.Now()))

	// Force expiry by checking against a point past the idle window.
	future := time.Now().Add(2 * time.Minute)
	assert.True(t, reg.EvictIfExpired(future))

	// The transition happens once.
	assert.False(t, reg.EvictIfExpired(future))

	_, err = reg.Current()
	assert.ErrorIs(t, err, types.ErrSessionExpired)
}

func TestEvictIfExpired_NoSession(t *testing.T) {
	reg := newTestRegistry(t, 100, time.Minute)
	assert.False(t, reg.EvictIfExpired(time.Now()))
}

func TestClear(t *testing.T) {
	reg := newTestRegistry(t, 100, time.Minute)

	_, err := reg.Start("https://example.com", "hello")
	require.NoError(t, err)

	reg.Clear()

	_, err = reg.Current()
	assert.ErrorIs(t, err, types.ErrNoActiveSession)
}

func TestAdvance_WalksChunks(t *testing.T) {
	reg := newTestRegistry(t, 5000, time.Minute)

	sess, err := reg.Start("https://example.com", strings.Repeat("A", 12000))
	require.NoError(t, err)

	chunk, ok := sess.Advance()
	require.True(t, ok)
	assert.Equal(t, 1, chunk.Index)

	chunk, ok = sess.Advance()
	require.True(t, ok)
	assert.Equal(t, 2, chunk.Index)
	assert.Equal(t, 2000, chunk.Len())

	// Past the last chunk the signal repeats and the cursor stays put.
	_, ok = sess.Advance()
	assert.False(t, ok)
	_, ok = sess.Advance()
	assert.False(t, ok)
	assert.Equal(t, 2, sess.Cursor())
}

func TestAdvance_SingleChunk(t *testing.T) {
	reg := newTestRegistry(t, 5000, time.Minute)

	sess, err := reg.Start("https://example.com", "short")
	require.NoError(t, err)

	_, ok := sess.Advance()
	assert.False(t, ok)
	assert.Equal(t, 0, sess.Cursor())
}

func TestSearchState_ResetAndContinue(t *testing.T) {
	reg := newTestRegistry(t, 100, time.Minute)

	sess, err := reg.Start("https://example.com", "abc abc abc abc")
	require.NoError(t, err)

	offsets := []int{0, 4, 8, 12}
	batch := sess.ResetSearch("abc", offsets, 3)
	assert.Equal(t, []int{0, 4, 8}, batch.Offsets)
	assert.Equal(t, 0, batch.Start)
	assert.Equal(t, 4, batch.Total)
	assert.True(t, batch.HasMore)
	assert.Equal(t, 3, batch.QueryLen)

	batch, err = sess.ContinueSearch(3)
	require.NoError(t, err)
	assert.Equal(t, []int{12}, batch.Offsets)
	assert.Equal(t, 3, batch.Start)
	assert.False(t, batch.HasMore)

	// Exhausted is not the same as absent: still no error.
	batch, err = sess.ContinueSearch(3)
	require.NoError(t, err)
	assert.Empty(t, batch.Offsets)
	assert.False(t, batch.HasMore)
}

func TestContinueSearch_NoActiveSearch(t *testing.T) {
	reg := newTestRegistry(t, 100, time.Minute)

	sess, err := reg.Start("https://example.com", "hello")
	require.NoError(t, err)

	_, err = sess.ContinueSearch(5)
	assert.ErrorIs(t, err, types.ErrNoActiveSearch)
}

func TestResetSearch_ReplacesPreviousQuery(t *testing.T) {
	reg := newTestRegistry(t, 100, time.Minute)

	sess, err := reg.Start("https://example.com", "x y x y")
	require.NoError(t, err)

	sess.ResetSearch("x", []int{0, 4}, 1)

	batch := sess.ResetSearch("y", []int{2, 6}, 1)
	assert.Equal(t, "y", batch.Query)
	assert.Equal(t, []int{2}, batch.Offsets)
	assert.Equal(t, 0, batch.Start, "a new query restarts delivery from the head")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvChunkSize, "1234")
	t.Setenv(EnvTimeout, "90")

	cfg := ConfigFromEnv()
	assert.Equal(t, 1234, cfg.ChunkSize)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestConfigFromEnv_DurationForm(t *testing.T) {
	t.Setenv(EnvTimeout, "45m")

	cfg := ConfigFromEnv()
	assert.Equal(t, 45*time.Minute, cfg.Timeout)
}

func TestConfigFromEnv_BadValuesKeepDefaults(t *testing.T) {
	t.Setenv(EnvChunkSize, "not-a-number")
	t.Setenv(EnvTimeout, "soon")

	cfg := ConfigFromEnv()
	assert.Equal(t, DefaultConfig().ChunkSize, cfg.ChunkSize)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}
