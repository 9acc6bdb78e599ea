package git

import (
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Commit is a commit of the analysed project
type Commit struct {
	Hash string
	When time.Time
}

// Tag is a tag resolved to the commit it points at
type Tag struct {
	Name string
	Hash string
	When time.Time
}

// Open opens the repository at repoPath or one of its parents
func Open(repoPath string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", repoPath, err)
	}
	return repo, nil
}

// History returns the commits reachable from end that are not reachable from
// start, oldest first. An empty end means HEAD; an empty start includes the
// whole history.
func History(repoPath, start, end string) ([]Commit, error) {
	repo, err := Open(repoPath)
	if err != nil {
		return nil, err
	}

	if end == "" {
		end = "HEAD"
	}
	endHash, err := repo.ResolveRevision(plumbing.Revision(end))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", end, err)
	}

	excluded := make(map[plumbing.Hash]struct{})
	if start != "" {
		startHash, err := repo.ResolveRevision(plumbing.Revision(start))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", start, err)
		}
		err = walk(repo, *startHash, func(c *object.Commit) error {
			excluded[c.Hash] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	var commits []Commit
	err = walk(repo, *endHash, func(c *object.Commit) error {
		if _, ok := excluded[c.Hash]; ok {
			return nil
		}
		commits = append(commits, Commit{Hash: c.Hash.String(), When: c.Committer.When})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The log yields newest first.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}

func walk(repo *gogit.Repository, from plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := repo.Log(&gogit.LogOptions{From: from, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return fmt.Errorf("failed to read history from %s: %w", from, err)
	}
	defer iter.Close()
	return iter.ForEach(fn)
}

// Tags returns all tags of the repository. Annotated tags are peeled to
// their commit; tags pointing at other objects are skipped.
func Tags(repoPath string) ([]Tag, error) {
	repo, err := Open(repoPath)
	if err != nil {
		return nil, err
	}

	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer refs.Close()

	var tags []Tag
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		commit, err := peelTag(repo, ref.Hash())
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) || errors.Is(err, object.ErrUnsupportedObject) {
				return nil
			}
			return err
		}
		tags = append(tags, Tag{
			Name: ref.Name().Short(),
			Hash: commit.Hash.String(),
			When: commit.Committer.When,
		})
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	return tags, nil
}

func peelTag(repo *gogit.Repository, hash plumbing.Hash) (*object.Commit, error) {
	tag, err := repo.TagObject(hash)
	switch {
	case err == nil:
		return tag.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return repo.CommitObject(hash)
	default:
		return nil, err
	}
}
