package casestudy

import (
	"sort"
	"strings"

	"github.com/bjulian5/varats/internal/model"
)

// Stage is a named group of revisions inside a case study. Stages record
// how their revisions were selected.
type Stage struct {
	name           *string
	samplingMethod *model.SamplingMethod
	releaseType    *model.ReleaseType
	revisions      []HashIDTuple
}

// NewStage creates an empty stage without metadata
func NewStage() *Stage {
	return &Stage{}
}

// Name returns the stage name, or "" and false if it has none
func (s *Stage) Name() (string, bool) {
	if s.name == nil {
		return "", false
	}
	return *s.name, true
}

func (s *Stage) SetName(name string) {
	s.name = &name
}

// SamplingMethod returns the sampling method used for this stage, if any
func (s *Stage) SamplingMethod() *model.SamplingMethod {
	return s.samplingMethod
}

func (s *Stage) SetSamplingMethod(method model.SamplingMethod) {
	s.samplingMethod = &method
}

// ReleaseType returns the release type used for this stage, if any
func (s *Stage) ReleaseType() *model.ReleaseType {
	return s.releaseType
}

func (s *Stage) SetReleaseType(releaseType model.ReleaseType) {
	s.releaseType = &releaseType
}

// Revisions returns the commit hashes of the stage in their current order
func (s *Stage) Revisions() []string {
	revs := make([]string, 0, len(s.revisions))
	for _, r := range s.revisions {
		revs = append(revs, r.CommitHash())
	}
	return revs
}

// HashIDTuples returns a copy of the stored revisions
func (s *Stage) HashIDTuples() []HashIDTuple {
	return append([]HashIDTuple(nil), s.revisions...)
}

// Len returns the number of revisions in the stage
func (s *Stage) Len() int {
	return len(s.revisions)
}

// HasRevision reports whether a stored hash starts with revision, so
// abbreviated hashes match their full form.
func (s *Stage) HasRevision(revision string) bool {
	for _, r := range s.revisions {
		if strings.HasPrefix(r.CommitHash(), revision) {
			return true
		}
	}
	return false
}

// AddRevision appends the revision unless the stage already has it. The
// stage is not re-sorted.
func (s *Stage) AddRevision(revision string, commitID int) {
	if s.HasRevision(revision) {
		return
	}
	s.revisions = append(s.revisions, NewHashIDTuple(revision, commitID))
}

// Sort orders the revisions by commit id in place; reverse orders newest first.
func (s *Stage) Sort(reverse bool) {
	sort.SliceStable(s.revisions, func(i, j int) bool {
		if reverse {
			return s.revisions[i].CommitID() > s.revisions[j].CommitID()
		}
		return s.revisions[i].CommitID() < s.revisions[j].CommitID()
	})
}

// SortDesc orders the revisions newest first
func (s *Stage) SortDesc() {
	s.Sort(true)
}

// StageDict is the structured representation of a Stage. Unset metadata is omitted.
type StageDict struct {
	Name           *string               `yaml:"name,omitempty"`
	SamplingMethod *model.SamplingMethod `yaml:"sampling_method,omitempty"`
	ReleaseType    *model.ReleaseType    `yaml:"release_type,omitempty"`
	Revisions      []HashIDDict          `yaml:"revisions"`
}

// Dict returns the structured representation of the stage
func (s *Stage) Dict() StageDict {
	d := StageDict{
		Name:           s.name,
		SamplingMethod: s.samplingMethod,
		ReleaseType:    s.releaseType,
		Revisions:      make([]HashIDDict, 0, len(s.revisions)),
	}
	for _, r := range s.revisions {
		d.Revisions = append(d.Revisions, r.Dict())
	}
	return d
}
