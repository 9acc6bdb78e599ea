package casestudy

import "fmt"

// HashIDTuple combines a commit hash with a unique and ordered id, starting
// with 0 for the first commit in the repository.
type HashIDTuple struct {
	commitHash string
	commitID   int
}

// NewHashIDTuple creates a tuple for a commit hash and its order id
func NewHashIDTuple(commitHash string, commitID int) HashIDTuple {
	return HashIDTuple{commitHash: commitHash, commitID: commitID}
}

// CommitHash returns the commit hash from the git repository
func (t HashIDTuple) CommitHash() string {
	return t.commitHash
}

// CommitID returns the order id of the commit
func (t HashIDTuple) CommitID() int {
	return t.commitID
}

// HashIDDict is the structured representation of a HashIDTuple
type HashIDDict struct {
	CommitHash string `yaml:"commit_hash"`
	CommitID   int    `yaml:"commit_id"`
}

// Dict returns the structured representation of the tuple
func (t HashIDTuple) Dict() HashIDDict {
	return HashIDDict{CommitHash: t.commitHash, CommitID: t.commitID}
}

func (t HashIDTuple) String() string {
	return fmt.Sprintf("(%d: #%s)", t.commitID, t.commitHash)
}
