package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bjulian5/varats/internal/git"
)

// NewTestRepo creates an empty git repository in a temporary directory
func NewTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	runGit(t, dir, nil, "init", "--initial-branch=main")
	runGit(t, dir, nil, "config", "user.email", "test@example.com")
	runGit(t, dir, nil, "config", "user.name", "Test User")
	runGit(t, dir, nil, "config", "tag.gpgsign", "false")
	runGit(t, dir, nil, "config", "commit.gpgsign", "false")
	return dir
}

// NewTestGitClient creates a git client for a new repository with an initial commit
func NewTestGitClient(t *testing.T) *git.Client {
	t.Helper()
	dir := NewTestRepo(t)
	CreateCommitAt(t, dir, "Initial commit", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	gitClient, err := git.NewClientAt(dir)
	require.NoError(t, err)
	return gitClient
}

// CreateCommitAt creates a commit with author and committer dates set to when
// and returns its hash
func CreateCommitAt(t *testing.T, dir, title string, when time.Time) string {
	t.Helper()

	// File names derive from the title so every commit changes the tree
	testFile := filepath.Join(dir, fmt.Sprintf("file-%s.txt", strings.ReplaceAll(title, " ", "_")))
	err := os.WriteFile(testFile, fmt.Appendf(nil, "%s\n%s", title, when.Format(time.RFC3339)), 0644)
	require.NoError(t, err)

	date := when.UTC().Format(time.RFC3339)
	env := []string{"GIT_AUTHOR_DATE=" + date, "GIT_COMMITTER_DATE=" + date}
	runGit(t, dir, nil, "add", ".")
	runGit(t, dir, env, "commit", "-m", title)
	return runGit(t, dir, nil, "rev-parse", "HEAD")
}

// CreateCommits creates one commit per date and returns the hashes in creation order
func CreateCommits(t *testing.T, dir string, dates ...time.Time) []string {
	t.Helper()
	hashes := make([]string, 0, len(dates))
	for i, when := range dates {
		hashes = append(hashes, CreateCommitAt(t, dir, fmt.Sprintf("commit %d", i), when))
	}
	return hashes
}

// CreateTag tags ref. Annotated tags get a message so they become tag objects.
func CreateTag(t *testing.T, dir, name, ref string, annotated bool) {
	t.Helper()
	if annotated {
		runGit(t, dir, nil, "tag", "-a", name, "-m", "Release "+name, ref)
		return
	}
	runGit(t, dir, nil, "tag", name, ref)
}

// Monthly returns n dates one month apart starting at start
func Monthly(start time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, start.AddDate(0, i, 0))
	}
	return dates
}

func runGit(t *testing.T, dir string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed: %s", strings.Join(args, " "), string(output))
	return strings.TrimSpace(string(output))
}
