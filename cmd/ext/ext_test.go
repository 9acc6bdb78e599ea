package ext

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/varats/internal/casestudy"
	"github.com/bjulian5/varats/internal/common"
	"github.com/bjulian5/varats/internal/extender"
	"github.com/bjulian5/varats/internal/model"
	"github.com/bjulian5/varats/internal/testutil"
)

func TestParseMergeStage(t *testing.T) {
	tests := []struct {
		value     string
		numStages int
		expected  int
		wantErr   bool
	}{
		{value: "-1", numStages: 0, expected: 0},
		{value: "-1", numStages: 3, expected: 2},
		{value: "", numStages: 2, expected: 1},
		{value: "+", numStages: 0, expected: 0},
		{value: "+", numStages: 3, expected: 3},
		{value: "1", numStages: 3, expected: 1},
		{value: "7", numStages: 3, expected: 7},
		{value: "-2", numStages: 3, wantErr: true},
		{value: "last", numStages: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s of %d", tt.value, tt.numStages), func(t *testing.T) {
			got, err := ParseMergeStage(tt.value, tt.numStages)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidMergeStage))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExt(t *testing.T) {
	testCases := []struct {
		desc        string
		setup       func(t *testing.T, hashes []string, cmd *Command)
		verify      func(t *testing.T, cs *casestudy.CaseStudy, hashes []string)
		expectError error
	}{
		{
			desc: "simple add merges into the last stage",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				cmd.Strategy = model.ExtendSimpleAdd
				cmd.Revisions.ExtraRevs = []string{hashes[5][:8]}
			},
			verify: func(t *testing.T, cs *casestudy.CaseStudy, hashes []string) {
				require.Equal(t, 2, cs.NumStages())
				assert.Equal(t, []string{hashes[1]}, cs.Stage(0).Revisions())
				assert.Equal(t, []string{hashes[5], hashes[2]}, cs.Stage(1).Revisions())
			},
		},
		{
			desc: "plus adds a new stage",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				cmd.Strategy = model.ExtendSimpleAdd
				cmd.MergeStage = NewStage
				cmd.Revisions.ExtraRevs = []string{hashes[5]}
			},
			verify: func(t *testing.T, cs *casestudy.CaseStudy, hashes []string) {
				require.Equal(t, 3, cs.NumStages())
				assert.Equal(t, []string{hashes[5]}, cs.Stage(2).Revisions())
			},
		},
		{
			desc: "explicit merge stage",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				cmd.Strategy = model.ExtendSimpleAdd
				cmd.MergeStage = "0"
				cmd.Revisions.ExtraRevs = []string{hashes[0]}
			},
			verify: func(t *testing.T, cs *casestudy.CaseStudy, hashes []string) {
				require.Equal(t, 2, cs.NumStages())
				assert.Equal(t, []string{hashes[1], hashes[0]}, cs.Stage(0).Revisions())
			},
		},
		{
			desc: "unknown revision leaves the file untouched",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				cmd.Strategy = model.ExtendSimpleAdd
				cmd.Revisions.ExtraRevs = []string{hashes[0], "0000000000"}
			},
			expectError: fmt.Errorf("0000000000"),
			verify: func(t *testing.T, cs *casestudy.CaseStudy, hashes []string) {
				assert.Equal(t, []string{hashes[1], hashes[2]}, cs.Revisions())
			},
		},
		{
			desc: "distribution add needs a distribution",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				cmd.Strategy = model.ExtendDistribAdd
			},
			expectError: extender.ErrMissingOption,
		},
		{
			desc: "distribution add samples new revisions",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				cmd.Strategy = model.ExtendDistribAdd
				cmd.MergeStage = NewStage
				cmd.Revisions.NumRev = 4
				require.NoError(t, cmd.Distribution.Set("uniform"))
			},
			verify: func(t *testing.T, cs *casestudy.CaseStudy, hashes []string) {
				require.Equal(t, 3, cs.NumStages())
				assert.Equal(t, 4, cs.Stage(2).Len())
				method := cs.Stage(2).SamplingMethod()
				require.NotNil(t, method)
				assert.Equal(t, model.SamplingUniform, *method)
			},
		},
		{
			desc: "per year add fills the merge stage",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				cmd.Strategy = model.ExtendPerYearAdd
				cmd.MergeStage = NewStage
				cmd.Revisions.RevsPerYear = 1
			},
			verify: func(t *testing.T, cs *casestudy.CaseStudy, hashes []string) {
				require.Equal(t, 3, cs.NumStages())
				assert.Equal(t, 2, cs.Stage(2).Len())
			},
		},
		{
			desc: "release add tags the stage",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				testutil.CreateTag(t, cmd.Revisions.GitPath, "release-2.0", hashes[9], true)
				testutil.CreateTag(t, cmd.Revisions.GitPath, "release-2.1", hashes[10], true)
				cmd.Strategy = model.ExtendReleaseAdd
				cmd.MergeStage = NewStage
				require.NoError(t, cmd.ReleaseType.Set("major"))
			},
			verify: func(t *testing.T, cs *casestudy.CaseStudy, hashes []string) {
				require.Equal(t, 3, cs.NumStages())
				assert.Equal(t, []string{hashes[9]}, cs.Stage(2).Revisions())
				releaseType := cs.Stage(2).ReleaseType()
				require.NotNil(t, releaseType)
				assert.Equal(t, model.ReleaseMajor, *releaseType)
			},
		},
		{
			desc: "smooth plot is not supported",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				cmd.Strategy = model.ExtendSmoothPlot
			},
			expectError: extender.ErrUnsupportedStrategy,
		},
		{
			desc: "invalid merge stage",
			setup: func(t *testing.T, hashes []string, cmd *Command) {
				cmd.Strategy = model.ExtendSimpleAdd
				cmd.MergeStage = "x"
			},
			expectError: ErrInvalidMergeStage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			testutil.CaptureOutput(t)
			repo := testutil.NewTestRepo(t)
			hashes := testutil.CreateCommits(t, repo, testutil.Monthly(time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC), 24)...)

			cs := casestudy.New("gzip", 0)
			cs.IncludeRevision(hashes[1], 1, 0, true)
			cs.IncludeRevision(hashes[2], 2, 1, true)
			path := testutil.StoreCaseStudy(t, t.TempDir(), cs)

			cmd := Command{
				CaseStudyPath: path,
				MergeStage:    LastStage,
				Revisions: common.RevisionFlags{
					GitPath: repo,
					End:     "HEAD",
					NumRev:  10,
					Seed:    7,
					NoCache: true,
				},
			}
			tc.setup(t, hashes, &cmd)

			err := cmd.Run(t.Context())
			if tc.expectError != nil {
				assert.ErrorContains(t, err, tc.expectError.Error())
			} else {
				require.NoError(t, err)
			}

			if tc.verify != nil {
				tc.verify(t, testutil.LoadCaseStudy(t, path), hashes)
			}
		})
	}
}
