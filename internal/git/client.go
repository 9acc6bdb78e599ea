package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// Client runs git commands inside one repository
type Client struct {
	gitRoot string
}

// NewClientAt creates a git client for the repository containing dir. An
// empty dir uses the current directory.
func NewClientAt(dir string) (*Client, error) {
	gitRoot, err := getGitRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Client{gitRoot: gitRoot}, nil
}

// GitRoot returns the root directory of the git repository
func (c *Client) GitRoot() string {
	return c.gitRoot
}

// GetCommitHash returns the full commit hash for a given ref
func (c *Client) GetCommitHash(ref string) (string, error) {
	output, err := c.run("rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to get commit hash for %s: %w", ref, err)
	}
	return output, nil
}

// CommitSubject returns the first line of the commit message of ref
func (c *Client) CommitSubject(ref string) (string, error) {
	output, err := c.run("log", "--format=%s", "-n", "1", ref)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", ref, err)
	}
	return output, nil
}

func (c *Client) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.gitRoot
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// IsGitRepo checks if dir is inside a git repository
func IsGitRepo(dir string) bool {
	_, err := getGitRoot(dir)
	return err == nil
}

func getGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
