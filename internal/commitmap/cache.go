package commitmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// CachePath returns the cache file for a project history ending at endHash
func CachePath(cacheDir, project, endHash string) string {
	short := endHash
	if len(short) > 12 {
		short = short[:12]
	}
	return filepath.Join(cacheDir, fmt.Sprintf("%s-%s.cmap.csv", project, short))
}

// WriteCache writes the map as hash,id,unix_time rows
func WriteCache(w io.Writer, m *CommitMap) error {
	cw := csv.NewWriter(w)
	for _, e := range m.entries {
		record := []string{e.Hash, strconv.Itoa(e.ID), strconv.FormatInt(e.When.Unix(), 10)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write commit map cache: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCache reads a map written by WriteCache
func ReadCache(r io.Reader) (*CommitMap, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	var entries []Entry
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read commit map cache: %w", err)
		}

		id, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("invalid commit id %q: %w", record[1], err)
		}
		unix, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid commit time %q: %w", record[2], err)
		}
		if id != len(entries) {
			return nil, fmt.Errorf("commit map cache out of order: id %d at row %d", id, len(entries))
		}
		entries = append(entries, Entry{Hash: record[0], ID: id, When: time.Unix(unix, 0).UTC()})
	}
	return fromEntries(entries), nil
}

// LoadOrBuild reads the map from cachePath when present, otherwise builds it
// and writes the cache. An empty cachePath disables caching.
func LoadOrBuild(repoPath, cachePath, start, end string) (*CommitMap, error) {
	if cachePath != "" {
		f, err := os.Open(cachePath)
		if err == nil {
			defer f.Close()
			return ReadCache(f)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to open commit map cache: %w", err)
		}
	}

	m, err := Build(repoPath, start, end)
	if err != nil {
		return nil, err
	}
	if cachePath == "" {
		return m, nil
	}

	if err := writeCacheFile(cachePath, m); err != nil {
		return nil, err
	}
	return m, nil
}

// writeCacheFile writes the cache to a temporary file in the cache directory
// and renames it over path, so readers never see a partial cache.
func writeCacheFile(path string, m *CommitMap) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create commit map cache: %w", err)
	}
	tmpName := tmp.Name()

	if err := WriteCache(tmp, m); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write commit map cache: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write commit map cache: %w", err)
	}
	return nil
}

// NewLazyLoader returns a function that loads the commit map on first use.
// Later calls return the same map or the same error.
func NewLazyLoader(repoPath, cachePath, end, start string) func() (*CommitMap, error) {
	return sync.OnceValues(func() (*CommitMap, error) {
		return LoadOrBuild(repoPath, cachePath, start, end)
	})
}
