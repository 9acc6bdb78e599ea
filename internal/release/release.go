// Package release finds release revisions of a project from its tags.
package release

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/bjulian5/varats/internal/git"
	"github.com/bjulian5/varats/internal/model"
)

// Release is a tagged release commit
type Release struct {
	Tag  string
	Hash string
	Type model.ReleaseType
}

// Provider lists the release revisions of a project
type Provider interface {
	// ReleaseRevisions returns all releases included in a selection of type rt
	ReleaseRevisions(rt model.ReleaseType) ([]Release, error)
}

// Classify determines the release type of a tag. Tags without a version or
// with a pre-release suffix are not releases.
func Classify(tag string) (model.ReleaseType, bool) {
	v, ok := normalize(tag)
	if !ok {
		return 0, false
	}

	parts := strings.Split(strings.TrimPrefix(semver.Canonical(v), "v"), ".")
	switch {
	case parts[1] == "0" && parts[2] == "0":
		return model.ReleaseMajor, true
	case parts[2] == "0":
		return model.ReleaseMinor, true
	default:
		return model.ReleasePatch, true
	}
}

// normalize turns tags like "gzip-1.10", "release_2_1" or "v3.0" into a
// semantic version. The version starts at the first digit that begins the
// tag or follows a separator, so digits inside names such as "bzip2" are skipped.
func normalize(tag string) (string, bool) {
	start := -1
	for i := 0; i < len(tag); i++ {
		if !isDigit(tag[i]) {
			continue
		}
		if i == 0 || strings.IndexByte("-_/vV", tag[i-1]) >= 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	v := "v" + strings.ReplaceAll(tag[start:], "_", ".")
	if !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return "", false
	}
	return v, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// GitProvider reads releases from the tags of a repository
type GitProvider struct {
	RepoPath string
}

// NewGitProvider creates a provider for the repository at repoPath
func NewGitProvider(repoPath string) *GitProvider {
	return &GitProvider{RepoPath: repoPath}
}

// ReleaseRevisions returns the tagged releases included by rt, sorted by tag name
func (p *GitProvider) ReleaseRevisions(rt model.ReleaseType) ([]Release, error) {
	tags, err := git.Tags(p.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read releases: %w", err)
	}
	return Select(tags, rt), nil
}

// Select classifies tags and keeps the releases included by rt
func Select(tags []git.Tag, rt model.ReleaseType) []Release {
	var releases []Release
	for _, tag := range tags {
		t, ok := Classify(tag.Name)
		if !ok || !rt.Includes(t) {
			continue
		}
		releases = append(releases, Release{Tag: tag.Name, Hash: tag.Hash, Type: t})
	}
	sort.Slice(releases, func(i, j int) bool { return releases[i].Tag < releases[j].Tag })
	return releases
}
