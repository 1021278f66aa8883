package corpus

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache", "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)

	in := Snapshot{
		App:       "claims-portal",
		Files:     []string{"Controllers/ClaimsController.cs", "Services/ClaimsService.cs"},
		ScannedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, cache.Put(in))

	out, found, err := cache.Get("claims-portal")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, out)
}

func TestCacheMiss(t *testing.T) {
	cache := openTestCache(t)

	_, found, err := cache.Get("unknown-app")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCachePutReplaces(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Put(Snapshot{App: "claims-portal", Files: []string{"a.cs"}}))
	require.NoError(t, cache.Put(Snapshot{App: "claims-portal", Files: []string{"a.cs", "b.cs"}}))

	out, found, err := cache.Get("claims-portal")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"a.cs", "b.cs"}, out.Files)
}
