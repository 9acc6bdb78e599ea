// Package common holds the flags and setup shared by the case study commands.
package common

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjulian5/varats/internal/commitmap"
	"github.com/bjulian5/varats/internal/config"
	"github.com/bjulian5/varats/internal/extender"
	"github.com/bjulian5/varats/internal/git"
	"github.com/bjulian5/varats/internal/sampling"
	"github.com/bjulian5/varats/internal/ui"
)

// ErrNoProject is returned when neither a project nor a git path is given
var ErrNoProject = errors.New("need --project or --git-path")

// RevisionFlags are the flags of commands that select revisions
type RevisionFlags struct {
	GitPath     string
	Project     string
	End         string
	Start       string
	ExtraRevs   []string
	RevsPerYear int
	RevsYearSep bool
	NumRev      int
	Seed        uint64
	NoCache     bool
}

// Register adds the revision selection flags to cmd
func (f *RevisionFlags) Register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.GitPath, "git-path", "", "Path to the git repository of the project")
	flags.StringVarP(&f.Project, "project", "p", "", "Name of the project (defaults to the git path name)")
	flags.StringVar(&f.End, "end", "HEAD", "Newest revision to consider")
	flags.StringVar(&f.Start, "start", "", "Oldest revision to consider (exclusive)")
	flags.StringSliceVar(&f.ExtraRevs, "extra-revs", nil, "Revisions that are always added")
	flags.IntVar(&f.RevsPerYear, "revs-per-year", 0, "Number of revisions sampled per year")
	flags.BoolVar(&f.RevsYearSep, "revs-year-sep", false, "Put the revisions of each year into their own stage")
	flags.IntVar(&f.NumRev, "num-rev", 10, "Number of revisions to sample")
	flags.Uint64Var(&f.Seed, "seed", 0, "Seed for sampling (0 picks a random seed)")
	flags.BoolVar(&f.NoCache, "no-cache", false, "Do not read or write the commit map cache")
}

// ProjectFromGitPath derives a project name from a repository path, so
// "/src/gzip-HEAD" names the project gzip
func ProjectFromGitPath(gitPath string) string {
	name := filepath.Base(filepath.Clean(gitPath))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSuffix(name, "-HEAD")
}

// Resolve fills in the git path and project name. Without a git path the
// repository of the current directory is used.
func (f *RevisionFlags) Resolve() (*git.Client, error) {
	if f.GitPath == "" && f.Project == "" {
		return nil, ErrNoProject
	}

	if f.GitPath != "" && !git.IsGitRepo(f.GitPath) {
		return nil, fmt.Errorf("%s is not a git repository", f.GitPath)
	}

	gitClient, err := git.NewClientAt(f.GitPath)
	if err != nil {
		ui.Error("Not in a git repository")
		return nil, fmt.Errorf("git client initialization failed: %w", err)
	}
	if f.GitPath == "" {
		f.GitPath = gitClient.GitRoot()
	}
	if f.Project == "" {
		f.Project = ProjectFromGitPath(f.GitPath)
	}
	return gitClient, nil
}

// CommitMapLoader returns a lazy loader for the commit map of the resolved
// repository. The cache file is keyed by the resolved end revision.
func (f *RevisionFlags) CommitMapLoader(gitClient *git.Client) (func() (*commitmap.CommitMap, error), error) {
	endHash, err := gitClient.GetCommitHash(f.End)
	if err != nil {
		return nil, err
	}

	cachePath := ""
	if !f.NoCache && f.Start == "" {
		cachePath = commitmap.CachePath(config.GetCacheDir(), f.Project, endHash)
	}
	slog.Debug("commit map", "repo", f.GitPath, "end", endHash, "start", f.Start, "cache", cachePath)
	return commitmap.NewLazyLoader(f.GitPath, cachePath, endHash, f.Start), nil
}

// Options converts the flags into extender options
func (f *RevisionFlags) Options() extender.Options {
	opts := extender.Options{
		ExtraRevs:   f.ExtraRevs,
		RevsPerYear: f.RevsPerYear,
		RevsYearSep: f.RevsYearSep,
		NumRev:      f.NumRev,
	}
	if f.Seed != 0 {
		opts.Rand = sampling.NewRand(f.Seed)
	}
	return opts
}
