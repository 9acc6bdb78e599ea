// Package commitmap assigns every commit of a project a stable, time ordered id.
package commitmap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bjulian5/varats/internal/git"
)

var (
	// ErrUnknownCommit is returned for hashes that are not part of the map
	ErrUnknownCommit = errors.New("unknown commit")
	// ErrAmbiguousCommit is returned when a short hash matches several commits
	ErrAmbiguousCommit = errors.New("ambiguous commit")
)

// Entry is one commit of the map
type Entry struct {
	Hash string
	ID   int
	When time.Time
}

// CommitMap maps commit hashes to ids. Ids start at 0 for the oldest commit.
type CommitMap struct {
	entries []Entry
	byHash  map[string]int
}

// New creates a commit map from commits ordered oldest first. Commit times
// are kept in UTC, the zone the cache reads them back in, so years are the
// same for built and cached maps.
func New(commits []git.Commit) *CommitMap {
	entries := make([]Entry, 0, len(commits))
	for i, c := range commits {
		entries = append(entries, Entry{Hash: c.Hash, ID: i, When: c.When.UTC()})
	}
	return fromEntries(entries)
}

func fromEntries(entries []Entry) *CommitMap {
	byHash := make(map[string]int, len(entries))
	for i, e := range entries {
		byHash[e.Hash] = i
	}
	return &CommitMap{entries: entries, byHash: byHash}
}

// Build creates the commit map of the repository at repoPath for all
// commits after start up to and including end
func Build(repoPath, start, end string) (*CommitMap, error) {
	commits, err := git.History(repoPath, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to build commit map: %w", err)
	}
	return New(commits), nil
}

// Len returns the number of commits in the map
func (m *CommitMap) Len() int {
	return len(m.entries)
}

// Items returns all entries, oldest first
func (m *CommitMap) Items() []Entry {
	return append([]Entry(nil), m.entries...)
}

// lookup resolves a full or abbreviated hash
func (m *CommitMap) lookup(hash string) (Entry, error) {
	if idx, ok := m.byHash[hash]; ok {
		return m.entries[idx], nil
	}
	if hash == "" {
		return Entry{}, fmt.Errorf("%w: empty hash", ErrUnknownCommit)
	}

	found := -1
	for i, e := range m.entries {
		if !strings.HasPrefix(e.Hash, hash) {
			continue
		}
		if found >= 0 {
			return Entry{}, fmt.Errorf("%w: %s", ErrAmbiguousCommit, hash)
		}
		found = i
	}
	if found < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownCommit, hash)
	}
	return m.entries[found], nil
}

// TimeID returns the id of a commit
func (m *CommitMap) TimeID(hash string) (int, error) {
	e, err := m.lookup(hash)
	if err != nil {
		return 0, err
	}
	return e.ID, nil
}

// ShortToLong expands an abbreviated hash to the full hash
func (m *CommitMap) ShortToLong(short string) (string, error) {
	e, err := m.lookup(short)
	if err != nil {
		return "", err
	}
	return e.Hash, nil
}

// Entry returns the entry of a full or abbreviated hash
func (m *CommitMap) Entry(hash string) (Entry, error) {
	return m.lookup(hash)
}

// Between returns the entries with from <= When < to, oldest first
func (m *CommitMap) Between(from, to time.Time) []Entry {
	var result []Entry
	for _, e := range m.entries {
		if !e.When.Before(from) && e.When.Before(to) {
			result = append(result, e)
		}
	}
	return result
}

// Years returns every calendar year between the oldest and the newest
// commit, ascending. Years without commits are included.
func (m *CommitMap) Years() []int {
	if len(m.entries) == 0 {
		return nil
	}
	first, last := m.entries[0].When.Year(), m.entries[0].When.Year()
	for _, e := range m.entries {
		y := e.When.Year()
		first = min(first, y)
		last = max(last, y)
	}

	years := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		years = append(years, y)
	}
	return years
}

// InYear returns the entries committed in the given calendar year, in the
// time zone each commit was recorded with
func (m *CommitMap) InYear(year int) []Entry {
	var result []Entry
	for _, e := range m.entries {
		if e.When.Year() == year {
			result = append(result, e)
		}
	}
	return result
}
