package report

import (
	"errors"
	"fmt"
)

// ErrUnknownStatus is returned for unknown file status names
var ErrUnknownStatus = errors.New("unknown file status")

// FileStatus is the outcome of an analysis run encoded in a result file name
type FileStatus int

const (
	StatusSuccess FileStatus = iota
	StatusFailed
	StatusCompileError
	StatusBlocked
	// StatusMissing marks revisions without any result file. It never
	// appears in a file name.
	StatusMissing
)

var fileStatusNames = []string{
	StatusSuccess:      "success",
	StatusFailed:       "failed",
	StatusCompileError: "cerror",
	StatusBlocked:      "blocked",
	StatusMissing:      "missing",
}

// AllStatuses lists every status in display order
func AllStatuses() []FileStatus {
	return []FileStatus{StatusSuccess, StatusFailed, StatusCompileError, StatusBlocked, StatusMissing}
}

func (s FileStatus) String() string {
	if s < 0 || int(s) >= len(fileStatusNames) {
		return fmt.Sprintf("FileStatus(%d)", int(s))
	}
	return fileStatusNames[s]
}

// ParseFileStatus resolves the status part of a result file name
func ParseFileStatus(name string) (FileStatus, error) {
	for i, n := range fileStatusNames {
		if n == name && FileStatus(i) != StatusMissing {
			return FileStatus(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}
