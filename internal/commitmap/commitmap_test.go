package commitmap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/varats/internal/git"
	"github.com/bjulian5/varats/internal/testutil"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func newTestMap() *CommitMap {
	return New([]git.Commit{
		{Hash: "aaaa1111", When: date(2018, 3, 1)},
		{Hash: "aaab2222", When: date(2018, 11, 1)},
		{Hash: "bbbb3333", When: date(2020, 2, 1)},
		{Hash: "cccc4444", When: date(2020, 7, 1)},
	})
}

func TestCommitMap_TimeID(t *testing.T) {
	m := newTestMap()

	tests := []struct {
		name        string
		hash        string
		expected    int
		expectedErr error
	}{
		{name: "oldest commit", hash: "aaaa1111", expected: 0},
		{name: "newest commit", hash: "cccc4444", expected: 3},
		{name: "unique prefix", hash: "bbbb", expected: 2},
		{name: "ambiguous prefix", hash: "aaa", expectedErr: ErrAmbiguousCommit},
		{name: "unknown", hash: "dddd", expectedErr: ErrUnknownCommit},
		{name: "empty", hash: "", expectedErr: ErrUnknownCommit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := m.TimeID(tt.hash)
			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestCommitMap_ShortToLong(t *testing.T) {
	m := newTestMap()

	long, err := m.ShortToLong("cccc")
	require.NoError(t, err)
	assert.Equal(t, "cccc4444", long)

	_, err = m.ShortToLong("ffff")
	assert.True(t, errors.Is(err, ErrUnknownCommit))
}

func TestCommitMap_Items(t *testing.T) {
	m := newTestMap()
	items := m.Items()

	require.Len(t, items, 4)
	assert.Equal(t, 4, m.Len())
	for i, e := range items {
		assert.Equal(t, i, e.ID)
	}

	items[0].Hash = "changed"
	assert.Equal(t, "aaaa1111", m.Items()[0].Hash)
}

func TestCommitMap_Years(t *testing.T) {
	m := newTestMap()
	assert.Equal(t, []int{2018, 2019, 2020}, m.Years())
	assert.Len(t, m.InYear(2018), 2)
	assert.Empty(t, m.InYear(2019))
	assert.Equal(t, "bbbb3333", m.InYear(2020)[0].Hash)

	assert.Nil(t, New(nil).Years())
}

func TestCommitMap_Between(t *testing.T) {
	m := newTestMap()

	entries := m.Between(date(2018, 11, 1), date(2020, 7, 1))
	require.Len(t, entries, 2)
	assert.Equal(t, "aaab2222", entries[0].Hash)
	assert.Equal(t, "bbbb3333", entries[1].Hash)
}

func TestCache_RoundTrip(t *testing.T) {
	m := newTestMap()

	var buf bytes.Buffer
	require.NoError(t, WriteCache(&buf, m))
	assert.Contains(t, buf.String(), "aaaa1111,0,")

	loaded, err := ReadCache(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Len(), loaded.Len())
	for i, e := range loaded.Items() {
		orig := m.Items()[i]
		assert.Equal(t, orig.Hash, e.Hash)
		assert.Equal(t, orig.ID, e.ID)
		assert.True(t, orig.When.Equal(e.When))
	}
}

func TestCache_KeepsYearsOfZonedCommits(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	m := New([]git.Commit{
		{Hash: "aaaa", When: time.Date(2019, 12, 31, 22, 0, 0, 0, est)},
		{Hash: "bbbb", When: time.Date(2020, 6, 1, 12, 0, 0, 0, est)},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCache(&buf, m))
	cached, err := ReadCache(&buf)
	require.NoError(t, err)

	assert.Equal(t, m.Years(), cached.Years())
	for _, year := range m.Years() {
		assert.Equal(t, m.InYear(year), cached.InYear(year), "year %d", year)
	}
	assert.Equal(t, []int{2020}, cached.Years())
}

func TestWriteCacheFile_ReplacesWholeFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	path := filepath.Join(dir, "gzip-abc.cmap.csv")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(path, []byte("stale,0,1\nstale2,1,2\nstale3,2,3\nstale4,3,4\nstale5,4,5\n"), 0644))

	m := newTestMap()
	require.NoError(t, writeCacheFile(path, m))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	loaded, err := ReadCache(f)
	require.NoError(t, err)
	assert.Equal(t, m.Items(), loaded.Items())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are removed")
}

func TestReadCache_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "wrong field count", input: "abc,0\n"},
		{name: "non numeric id", input: "abc,x,100\n"},
		{name: "non numeric time", input: "abc,0,yesterday\n"},
		{name: "ids out of order", input: "abc,1,100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCache(bytes.NewBufferString(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestBuildFromRepository(t *testing.T) {
	dir := testutil.NewTestRepo(t)
	hashes := testutil.CreateCommits(t, dir, testutil.Monthly(date(2020, 1, 1), 4)...)

	m, err := Build(dir, "", "")
	require.NoError(t, err)
	require.Equal(t, 4, m.Len())
	for i, hash := range hashes {
		id, err := m.TimeID(hash)
		require.NoError(t, err)
		assert.Equal(t, i, id)
	}

	m, err = Build(dir, hashes[1], "")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	_, err = m.TimeID(hashes[1])
	assert.True(t, errors.Is(err, ErrUnknownCommit))
}

func TestLazyLoader(t *testing.T) {
	dir := testutil.NewTestRepo(t)
	hashes := testutil.CreateCommits(t, dir, testutil.Monthly(date(2020, 1, 1), 3)...)
	cachePath := CachePath(filepath.Join(t.TempDir(), "cache"), "proj", hashes[2])

	load := NewLazyLoader(dir, cachePath, "", "")
	first, err := load()
	require.NoError(t, err)
	assert.Equal(t, 3, first.Len())
	assert.FileExists(t, cachePath)

	second, err := load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	// A new loader reads the cache instead of the repository.
	require.NoError(t, os.RemoveAll(filepath.Join(dir, ".git")))
	cached, err := NewLazyLoader(dir, cachePath, "", "")()
	require.NoError(t, err)
	assert.Equal(t, 3, cached.Len())
	id, err := cached.TimeID(hashes[2])
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestCachePath(t *testing.T) {
	assert.Equal(t, filepath.Join("c", "gzip-0123456789ab.cmap.csv"), CachePath("c", "gzip", "0123456789abcdef"))
	assert.Equal(t, filepath.Join("c", "gzip-abc.cmap.csv"), CachePath("c", "gzip", "abc"))
}
