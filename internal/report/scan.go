package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bjulian5/varats/internal/casestudy"
)

// ResultFile is a result file found on disk
type ResultFile struct {
	Path    string
	Info    FileInfo
	ModTime time.Time
}

// ProjectDir returns the directory holding the results of a project
func ProjectDir(resultDir, project string) string {
	return filepath.Join(resultDir, project)
}

// ResultFiles lists the result files of a project. Files that do not follow
// the result file naming scheme are skipped. A missing directory yields no files.
func ResultFiles(resultDir, project string) ([]ResultFile, error) {
	dir := ProjectDir(resultDir, project)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read result directory %s: %w", dir, err)
	}

	var files []ResultFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := ParseFileName(entry.Name())
		if err != nil || info.Project != project {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		files = append(files, ResultFile{
			Path:    filepath.Join(dir, entry.Name()),
			Info:    info,
			ModTime: fi.ModTime(),
		})
	}
	return files, nil
}

// Projects lists the projects that have a result directory
func Projects(resultDir string) ([]string, error) {
	entries, err := os.ReadDir(resultDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read result directory %s: %w", resultDir, err)
	}

	var projects []string
	for _, entry := range entries {
		if entry.IsDir() {
			projects = append(projects, entry.Name())
		}
	}
	return projects, nil
}

// matchesRevision reports whether a result for version belongs to revision.
// Either side may be abbreviated.
func matchesRevision(version, revision string) bool {
	return version != "" && (strings.HasPrefix(revision, version) || strings.HasPrefix(version, revision))
}

// FindResults returns the result files of a report type for revision with
// the given status, newest first
func FindResults(resultDir, project string, rt Type, revision string, status FileStatus) ([]ResultFile, error) {
	files, err := ResultFiles(resultDir, project)
	if err != nil {
		return nil, err
	}

	var matches []ResultFile
	for _, f := range files {
		if f.Info.Shorthand == rt.Shorthand && f.Info.Status == status && matchesRevision(f.Info.Version, revision) {
			matches = append(matches, f)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ModTime.After(matches[j].ModTime) })
	return matches, nil
}

// RevisionStatus is the analysis state of one case study revision
type RevisionStatus struct {
	casestudy.HashIDTuple
	Status FileStatus
}

// newestPerRevision picks the newest result file of type rt for every
// revision of cs that has results. A result belongs to a revision when its
// version is a prefix of the stored hash, the rule of the case study's
// revision filter.
func newestPerRevision(cs *casestudy.CaseStudy, files []ResultFile, rt Type) map[string]ResultFile {
	filter := cs.RevisionFilter()
	newest := make(map[string]ResultFile)
	for _, f := range files {
		if f.Info.Shorthand != rt.Shorthand || f.Info.Version == "" || !filter.Allows(f.Info.Version) {
			continue
		}
		for _, rev := range cs.Revisions() {
			if !strings.HasPrefix(rev, f.Info.Version) {
				continue
			}
			if prev, ok := newest[rev]; !ok || newer(f, prev) {
				newest[rev] = f
			}
		}
	}
	return newest
}

func newer(a, b ResultFile) bool {
	if a.ModTime.Equal(b.ModTime) {
		return a.Path > b.Path
	}
	return a.ModTime.After(b.ModTime)
}

// NewestResultFiles returns the newest result file of type rt for every
// revision of cs, sorted by path
func NewestResultFiles(cs *casestudy.CaseStudy, resultDir string, rt Type) ([]ResultFile, error) {
	files, err := ResultFiles(resultDir, cs.ProjectName())
	if err != nil {
		return nil, err
	}

	newest := newestPerRevision(cs, files, rt)
	result := make([]ResultFile, 0, len(newest))
	for _, f := range newest {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result, nil
}

// Status maps every revision of cs to the status of its newest result file
// for report type rt. Revisions without results are StatusMissing. Revisions
// appear in stage order without duplicates.
func Status(cs *casestudy.CaseStudy, resultDir string, rt Type) ([]RevisionStatus, error) {
	files, err := ResultFiles(resultDir, cs.ProjectName())
	if err != nil {
		return nil, err
	}
	newest := newestPerRevision(cs, files, rt)

	seen := make(map[string]struct{})
	var result []RevisionStatus
	for _, stage := range cs.Stages() {
		for _, rev := range stage.HashIDTuples() {
			if _, ok := seen[rev.CommitHash()]; ok {
				continue
			}
			seen[rev.CommitHash()] = struct{}{}

			rs := RevisionStatus{HashIDTuple: rev, Status: StatusMissing}
			if f, ok := newest[rev.CommitHash()]; ok {
				rs.Status = f.Info.Status
			}
			result = append(result, rs)
		}
	}
	return result, nil
}

// StageStatus returns the statuses of the revisions of one stage, in
// stage order
func StageStatus(stage *casestudy.Stage, statuses []RevisionStatus) []RevisionStatus {
	byHash := make(map[string]FileStatus, len(statuses))
	for _, rs := range statuses {
		byHash[rs.CommitHash()] = rs.Status
	}

	result := make([]RevisionStatus, 0, stage.Len())
	for _, rev := range stage.HashIDTuples() {
		status, ok := byHash[rev.CommitHash()]
		if !ok {
			status = StatusMissing
		}
		result = append(result, RevisionStatus{HashIDTuple: rev, Status: status})
	}
	return result
}

// Summary counts revisions per status
type Summary struct {
	Counts map[FileStatus]int
	Total  int
}

// Summarize counts the statuses of revisions
func Summarize(statuses []RevisionStatus) Summary {
	s := Summary{Counts: make(map[FileStatus]int)}
	for _, rs := range statuses {
		s.Counts[rs.Status]++
		s.Total++
	}
	return s
}

// Count returns the number of revisions with status
func (s Summary) Count(status FileStatus) int {
	return s.Counts[status]
}
