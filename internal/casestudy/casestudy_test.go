package casestudy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/varats/internal/model"
)

// newTestCaseStudy creates a case study with one named stage per entry of revs
func newTestCaseStudy(t *testing.T, revs ...[]HashIDTuple) *CaseStudy {
	t.Helper()
	cs := New("gzip", 0)
	for i, stageRevs := range revs {
		cs.IncludeRevisions(stageRevs, i, true, nil, nil)
	}
	return cs
}

func TestCaseStudy_IncludeRevisionsSortsDescending(t *testing.T) {
	cs := New("gzip", 0)
	cs.IncludeRevisions([]HashIDTuple{
		NewHashIDTuple("a", 3),
		NewHashIDTuple("b", 1),
		NewHashIDTuple("c", 2),
	}, 0, true, nil, nil)

	require.Equal(t, 1, cs.NumStages())
	assert.Equal(t, []string{"a", "c", "b"}, cs.Stage(0).Revisions())
}

func TestCaseStudy_IncludeRevisionsWithoutSort(t *testing.T) {
	cs := New("gzip", 0)
	cs.IncludeRevisions([]HashIDTuple{
		NewHashIDTuple("a", 3),
		NewHashIDTuple("b", 1),
		NewHashIDTuple("c", 2),
	}, 0, false, nil, nil)

	assert.Equal(t, []string{"a", "b", "c"}, cs.Stage(0).Revisions())
}

func TestCaseStudy_IncludeRevisionsGrowsStages(t *testing.T) {
	cs := New("gzip", 0)
	cs.IncludeRevisions(nil, 2, true, nil, nil)
	assert.Equal(t, 3, cs.NumStages())

	cs.IncludeRevisions([]HashIDTuple{NewHashIDTuple("x", 1)}, 4, true, nil, nil)
	assert.Equal(t, 5, cs.NumStages())
	assert.True(t, cs.HasRevisionInStage("x", 4))
	assert.False(t, cs.HasRevisionInStage("x", 3))
}

func TestCaseStudy_IncludeRevisionsRecordsMetadata(t *testing.T) {
	method := model.SamplingHalfNormal
	release := model.ReleaseMajor

	cs := New("gzip", 0)
	cs.IncludeRevisions([]HashIDTuple{NewHashIDTuple("x", 1)}, 0, true, &method, nil)
	cs.IncludeRevisions([]HashIDTuple{NewHashIDTuple("y", 1)}, 1, true, nil, &release)

	require.NotNil(t, cs.Stage(0).SamplingMethod())
	assert.Equal(t, model.SamplingHalfNormal, *cs.Stage(0).SamplingMethod())
	assert.Nil(t, cs.Stage(0).ReleaseType())

	assert.Nil(t, cs.Stage(1).SamplingMethod())
	require.NotNil(t, cs.Stage(1).ReleaseType())
	assert.Equal(t, model.ReleaseMajor, *cs.Stage(1).ReleaseType())
}

func TestCaseStudy_IncludeRevision(t *testing.T) {
	cs := New("gzip", 0)
	cs.IncludeRevision("b", 1, 0, true)
	cs.IncludeRevision("a", 2, 0, true)
	cs.IncludeRevision("a", 2, 0, true)
	assert.Equal(t, []string{"a", "b"}, cs.Stage(0).Revisions())

	cs.IncludeRevision("c", 3, 0, false)
	assert.Equal(t, []string{"a", "b", "c"}, cs.Stage(0).Revisions())

	cs.IncludeRevision("d", 0, 2, true)
	assert.Equal(t, 3, cs.NumStages())
	assert.Empty(t, cs.Stage(1).Revisions())
}

func TestCaseStudy_RevisionsDeduplicatesAcrossStages(t *testing.T) {
	cs := newTestCaseStudy(t,
		[]HashIDTuple{NewHashIDTuple("a", 3), NewHashIDTuple("b", 1)},
		[]HashIDTuple{NewHashIDTuple("b", 1), NewHashIDTuple("c", 2)},
	)

	assert.Equal(t, []string{"a", "b", "c"}, cs.Revisions())
	assert.True(t, cs.HasRevisionInStage("b", 0))
	assert.True(t, cs.HasRevisionInStage("b", 1))
}

func TestCaseStudy_HasRevision(t *testing.T) {
	cs := newTestCaseStudy(t,
		[]HashIDTuple{NewHashIDTuple("deadbeef", 3)},
		[]HashIDTuple{NewHashIDTuple("cafebabe", 1)},
	)

	assert.True(t, cs.HasRevision("dead"))
	assert.True(t, cs.HasRevision("cafe"))
	assert.False(t, cs.HasRevision("beef"))
	assert.False(t, New("empty", 0).HasRevision("dead"))
}

func TestCaseStudy_HasRevisionInStageOutOfRange(t *testing.T) {
	cs := newTestCaseStudy(t, []HashIDTuple{NewHashIDTuple("a", 1)})

	assert.False(t, cs.HasRevisionInStage("a", 1))
	assert.False(t, cs.HasRevisionInStage("a", 100))
	assert.False(t, cs.HasRevisionInStage("a", -1))
}

func TestCaseStudy_StageLookupByName(t *testing.T) {
	cs := newTestCaseStudy(t, nil, nil, nil)
	cs.NameStage(1, "dup")
	cs.NameStage(2, "dup")
	cs.NameStage(10, "ignored")

	assert.Equal(t, 1, cs.StageIndexByName("dup"))
	assert.Same(t, cs.Stage(1), cs.StageByName("dup"))

	assert.Equal(t, NotFound, cs.StageIndexByName("X"))
	assert.Nil(t, cs.StageByName("X"))
	assert.Equal(t, NotFound, cs.StageIndexByName("ignored"))
}

func TestCaseStudy_ShiftStage(t *testing.T) {
	tests := []struct {
		name        string
		fromIndex   int
		offset      int
		expectError bool
		expected    []string
	}{
		{name: "positive offset inserts empty stages", fromIndex: 1, offset: 2, expected: []string{"s0", "", "", "s1", "s2"}},
		{name: "zero offset is a no-op", fromIndex: 0, offset: 0, expected: []string{"s0", "s1", "s2"}},
		{name: "negative offset removes preceding stages", fromIndex: 2, offset: -1, expected: []string{"s0", "s2"}},
		{name: "negative offset removes from the front", fromIndex: 2, offset: -2, expected: []string{"s2"}},
		{name: "from index below zero", fromIndex: -1, offset: 1, expectError: true},
		{name: "from index past the end", fromIndex: 3, offset: 1, expectError: true},
		{name: "shift before the first stage", fromIndex: 1, offset: -2, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := newTestCaseStudy(t, nil, nil, nil)
			cs.NameStage(0, "s0")
			cs.NameStage(1, "s1")
			cs.NameStage(2, "s2")

			err := cs.ShiftStage(tt.fromIndex, tt.offset)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrOutOfBounds))
				assert.Equal(t, 3, cs.NumStages(), "failed shift must not mutate")
				return
			}
			require.NoError(t, err)

			var names []string
			for _, stage := range cs.Stages() {
				name, _ := stage.Name()
				names = append(names, name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestCaseStudy_ShiftStageRoundTripLosesData(t *testing.T) {
	cs := newTestCaseStudy(t,
		[]HashIDTuple{NewHashIDTuple("a", 1)},
		[]HashIDTuple{NewHashIDTuple("b", 2)},
		[]HashIDTuple{NewHashIDTuple("c", 3)},
	)

	require.NoError(t, cs.ShiftStage(1, 2))
	assert.Equal(t, 5, cs.NumStages())
	assert.True(t, cs.HasRevisionInStage("b", 3))

	// Shifting the moved stages back removes the two stages in front of them.
	require.NoError(t, cs.ShiftStage(3, -2))
	assert.Equal(t, 3, cs.NumStages())
	assert.Equal(t, []string{"a", "b", "c"}, cs.Revisions())

	// Shifting back further than the inserted gap removes real data.
	require.NoError(t, cs.ShiftStage(1, 2))
	require.NoError(t, cs.ShiftStage(3, -3))
	assert.Equal(t, 2, cs.NumStages())
	assert.False(t, cs.HasRevision("a"), "stage 0 was removed by the negative shift")
	assert.Equal(t, []string{"b", "c"}, cs.Revisions())
}

func TestCaseStudy_InsertEmptyStage(t *testing.T) {
	cs := newTestCaseStudy(t,
		[]HashIDTuple{NewHashIDTuple("a", 1)},
		[]HashIDTuple{NewHashIDTuple("b", 2)},
	)

	stage := cs.InsertEmptyStage(1)
	stage.SetName("inserted")
	stage.AddRevision("z", 9)

	require.Equal(t, 3, cs.NumStages())
	assert.Equal(t, 1, cs.StageIndexByName("inserted"))
	assert.True(t, cs.HasRevisionInStage("b", 2))
	assert.True(t, cs.HasRevisionInStage("z", 1))

	last := cs.InsertEmptyStage(99)
	assert.Same(t, last, cs.Stage(3))

	first := cs.InsertEmptyStage(-5)
	assert.Same(t, first, cs.Stage(0))
}

func TestCaseStudy_StagesReturnsCopy(t *testing.T) {
	cs := newTestCaseStudy(t, nil, nil)
	stages := cs.Stages()
	stages[0] = nil

	assert.NotNil(t, cs.Stage(0))
}

func TestCaseStudy_RevisionFilterIsLive(t *testing.T) {
	cs := newTestCaseStudy(t, []HashIDTuple{NewHashIDTuple("abc", 1)})
	filter := cs.RevisionFilter()
	allow := filter.AsFunc()

	assert.True(t, filter.Allows("abc"))
	assert.False(t, allow("def"))

	cs.IncludeRevision("def", 2, 1, true)
	assert.True(t, allow("def"))
}

func TestCaseStudy_Dict(t *testing.T) {
	cs := newTestCaseStudy(t, []HashIDTuple{NewHashIDTuple("abc", 1)})
	cs.NameStage(0, "first")

	d := cs.Dict()
	assert.Equal(t, "gzip", d.ProjectName)
	assert.Equal(t, 0, d.Version)
	require.Len(t, d.Stages, 1)
	assert.Equal(t, "first", *d.Stages[0].Name)

	empty := New("empty", 3).Dict()
	assert.NotNil(t, empty.Stages)
	assert.Empty(t, empty.Stages)
}
