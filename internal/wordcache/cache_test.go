package wordcache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabreo/palabreo/internal/words"
)

// countingSource serves a fixed list (or error) and counts upstream calls.
type countingSource struct {
	list  []string
	err   error
	calls int
}

func (s *countingSource) Candidates(ctx context.Context, length int) (*words.Pool, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return words.FromList(s.list), nil
}

func openTestCache(t *testing.T, upstream *countingSource, ttl time.Duration) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "pools.db"), upstream, "es", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheMissDelegatesThenServesLocally(t *testing.T) {
	up := &countingSource{list: []string{"llama", "canon"}}
	c := openTestCache(t, up, time.Hour)

	first, err := c.Candidates(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"llama", "canon"}, first.Words())
	assert.Equal(t, 1, up.calls)

	second, err := c.Candidates(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, first.Words(), second.Words())
	assert.Equal(t, 1, up.calls, "fresh row must not hit upstream")
}

func TestCacheStaleRowDelegates(t *testing.T) {
	up := &countingSource{list: []string{"llama"}}
	c := openTestCache(t, up, time.Nanosecond)

	_, err := c.Candidates(context.Background(), 5)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	_, err = c.Candidates(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls, "stale row must delegate upstream")
}

func TestCacheUpstreamErrorPassesThrough(t *testing.T) {
	boom := errors.New("provider down")
	up := &countingSource{err: boom}
	c := openTestCache(t, up, time.Hour)

	_, err := c.Candidates(context.Background(), 5)
	assert.ErrorIs(t, err, boom)

	// Recovery: the failure left nothing cached.
	up.err = nil
	up.list = []string{"llama"}
	pool, err := c.Candidates(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"llama"}, pool.Words())
	assert.Equal(t, 2, up.calls)
}

func TestCacheSkipsEmptyPools(t *testing.T) {
	up := &countingSource{list: nil}
	c := openTestCache(t, up, time.Hour)

	for i := 0; i < 2; i++ {
		pool, err := c.Candidates(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, 0, pool.Len())
	}
	assert.Equal(t, 2, up.calls, "empty pools must not be cached")
}

func TestCacheKeysByLength(t *testing.T) {
	up := &countingSource{list: []string{"llama"}}
	c := openTestCache(t, up, time.Hour)

	_, err := c.Candidates(context.Background(), 5)
	require.NoError(t, err)
	_, err = c.Candidates(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls)

	_, err = c.Candidates(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls)
}

func TestCacheKeysByLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.db")
	up := &countingSource{list: []string{"llama"}}

	es, err := Open(path, up, "es", time.Hour)
	require.NoError(t, err)
	_, err = es.Candidates(context.Background(), 5)
	require.NoError(t, err)
	require.NoError(t, es.Close())

	en, err := Open(path, up, "en", time.Hour)
	require.NoError(t, err)
	defer en.Close()
	_, err = en.Candidates(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 2, up.calls, "languages must not share rows")
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "pools.db")
	up := &countingSource{list: []string{"llama"}}

	c, err := Open(path, up, "es", time.Hour)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Candidates(context.Background(), 5)
	assert.NoError(t, err)
}
