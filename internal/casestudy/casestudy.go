// Package casestudy pins down the exact set of revisions of a project that
// should be analysed, grouped into ordered stages.
package casestudy

import (
	"errors"
	"fmt"

	"github.com/bjulian5/varats/internal/model"
)

// ErrOutOfBounds is returned by structural edits with invalid stage indices
var ErrOutOfBounds = errors.New("stage index out of bounds")

// NotFound is the index returned when no stage matches a lookup
const NotFound = -1

// CaseStudy persists a set of revisions of a project to allow easy
// reevaluation. The project name must match the name of the analysed project.
//
// A CaseStudy is not safe for concurrent use.
type CaseStudy struct {
	projectName string
	version     int
	stages      []*Stage
}

// New creates a case study with the given stages
func New(projectName string, version int, stages ...*Stage) *CaseStudy {
	return &CaseStudy{
		projectName: projectName,
		version:     version,
		stages:      stages,
	}
}

// ProjectName returns the name of the related project
func (c *CaseStudy) ProjectName() string {
	return c.projectName
}

// Version differentiates case studies of the same project
func (c *CaseStudy) Version() int {
	return c.version
}

// Stages returns a new slice with all stages. The stages themselves are shared.
func (c *CaseStudy) Stages() []*Stage {
	return append([]*Stage(nil), c.stages...)
}

// NumStages returns the number of stages
func (c *CaseStudy) NumStages() int {
	return len(c.stages)
}

// Stage returns the stage at idx, or nil when idx is out of range
func (c *CaseStudy) Stage(idx int) *Stage {
	if idx < 0 || idx >= len(c.stages) {
		return nil
	}
	return c.stages[idx]
}

// Revisions returns the revisions of all stages without duplicates, in the
// order they first appear when walking the stages in order.
func (c *CaseStudy) Revisions() []string {
	seen := make(map[string]struct{})
	var revs []string
	for _, stage := range c.stages {
		for _, rev := range stage.Revisions() {
			if _, ok := seen[rev]; ok {
				continue
			}
			seen[rev] = struct{}{}
			revs = append(revs, rev)
		}
	}
	return revs
}

// StageByName returns the first stage called name, or nil
func (c *CaseStudy) StageByName(name string) *Stage {
	idx := c.StageIndexByName(name)
	if idx == NotFound {
		return nil
	}
	return c.stages[idx]
}

// StageIndexByName returns the index of the first stage called name, or NotFound.
// Stage names are not required to be unique.
func (c *CaseStudy) StageIndexByName(name string) int {
	for i, stage := range c.stages {
		if n, ok := stage.Name(); ok && n == name {
			return i
		}
	}
	return NotFound
}

// HasRevision reports whether any stage contains revision
func (c *CaseStudy) HasRevision(revision string) bool {
	for _, stage := range c.stages {
		if stage.HasRevision(revision) {
			return true
		}
	}
	return false
}

// HasRevisionInStage reports whether the stage with the given index contains
// revision. Indices past the last stage report false.
func (c *CaseStudy) HasRevisionInStage(revision string, stageNum int) bool {
	stage := c.Stage(stageNum)
	if stage == nil {
		return false
	}
	return stage.HasRevision(revision)
}

// ShiftStage moves all stages starting at fromIndex by offset positions.
// A positive offset inserts empty stages in front of fromIndex. A negative
// offset removes the |offset| stages directly before fromIndex, together with
// their revisions.
func (c *CaseStudy) ShiftStage(fromIndex, offset int) error {
	if fromIndex < 0 || fromIndex >= len(c.stages) {
		return fmt.Errorf("%w: from index %d (stages: %d)", ErrOutOfBounds, fromIndex, len(c.stages))
	}
	if fromIndex+offset < 0 {
		return fmt.Errorf("%w: shifting stage %d by %d", ErrOutOfBounds, fromIndex, offset)
	}

	switch {
	case offset > 0:
		inserted := make([]*Stage, offset)
		for i := range inserted {
			inserted[i] = NewStage()
		}
		c.stages = append(c.stages[:fromIndex], append(inserted, c.stages[fromIndex:]...)...)
	case offset < 0:
		removeIndex := fromIndex + offset
		c.stages = append(c.stages[:removeIndex], c.stages[fromIndex:]...)
	}
	return nil
}

// InsertEmptyStage inserts a new stage at pos, shifting later stages to the
// right, and returns it. pos is clamped to the valid range.
func (c *CaseStudy) InsertEmptyStage(pos int) *Stage {
	if pos < 0 {
		pos = 0
	}
	if pos > len(c.stages) {
		pos = len(c.stages)
	}

	stage := NewStage()
	c.stages = append(c.stages, nil)
	copy(c.stages[pos+1:], c.stages[pos:])
	c.stages[pos] = stage
	return stage
}

// ensureStage appends empty stages until stageNum exists
func (c *CaseStudy) ensureStage(stageNum int) *Stage {
	for len(c.stages) <= stageNum {
		c.stages = append(c.stages, NewStage())
	}
	return c.stages[stageNum]
}

// IncludeRevision adds a revision to the stage stageNum, creating missing
// stages first. With sortRevs the stage is sorted afterwards.
func (c *CaseStudy) IncludeRevision(revision string, commitID int, stageNum int, sortRevs bool) {
	stage := c.ensureStage(stageNum)
	if stage.HasRevision(revision) {
		return
	}
	stage.AddRevision(revision, commitID)
	if sortRevs {
		stage.SortDesc()
	}
}

// IncludeRevisions adds multiple revisions to stage stageNum and sorts the
// stage once at the end. A non-nil sampling method or release type is
// recorded on the stage.
func (c *CaseStudy) IncludeRevisions(revisions []HashIDTuple, stageNum int, sortRevs bool,
	samplingMethod *model.SamplingMethod, releaseType *model.ReleaseType) {
	for _, rev := range revisions {
		c.IncludeRevision(rev.CommitHash(), rev.CommitID(), stageNum, false)
	}

	stage := c.ensureStage(stageNum)
	if samplingMethod != nil {
		stage.SetSamplingMethod(*samplingMethod)
	}
	if releaseType != nil {
		stage.SetReleaseType(*releaseType)
	}
	if sortRevs {
		stage.SortDesc()
	}
}

// NameStage names an existing stage. Unknown stage numbers are ignored.
func (c *CaseStudy) NameStage(stageNum int, name string) {
	if stage := c.Stage(stageNum); stage != nil {
		stage.SetName(name)
	}
}

// Dict is the structured representation of a CaseStudy
type Dict struct {
	ProjectName string      `yaml:"project_name"`
	Version     int         `yaml:"version"`
	Stages      []StageDict `yaml:"stages"`
}

// Dict returns the structured representation of the case study
func (c *CaseStudy) Dict() Dict {
	d := Dict{
		ProjectName: c.projectName,
		Version:     c.version,
		Stages:      make([]StageDict, 0, len(c.stages)),
	}
	for _, stage := range c.stages {
		d.Stages = append(d.Stages, stage.Dict())
	}
	return d
}
