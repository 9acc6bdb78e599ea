package ext

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjulian5/varats/internal/casestudy"
	"github.com/bjulian5/varats/internal/common"
	"github.com/bjulian5/varats/internal/extender"
	"github.com/bjulian5/varats/internal/model"
	"github.com/bjulian5/varats/internal/release"
	"github.com/bjulian5/varats/internal/ui"
)

const (
	// LastStage merges into the last existing stage
	LastStage = "-1"
	// NewStage merges into a new stage appended after the existing ones
	NewStage = "+"
)

// ErrInvalidMergeStage is returned for merge stages that are neither a stage
// index, -1 nor +
var ErrInvalidMergeStage = errors.New("invalid merge stage")

// Command extends an existing case study
type Command struct {
	// Arguments
	CaseStudyPath string
	Strategy      model.ExtenderStrategy

	// Flags
	MergeStage   string
	Distribution model.SamplingMethodFlag
	ReleaseType  model.ReleaseTypeFlag
	Revisions    common.RevisionFlags

	// Clients (can be mocked in tests)
	Releases release.Provider
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ext <case_study_path> <strategy>",
		Short: "Extend an existing case study",
		Long: `Add revisions to an existing case study and store it in place.

Strategies: ` + strings.Join(model.ExtenderStrategyNames(), ", ") + `

New revisions go into the last stage unless --merge-stage names another
stage. Use --merge-stage + to put them into a new stage.

Example:
  vara-cs ext paper_configs/ase-17/gzip_0.case_study simple_add --extra-revs 0dd8313
  vara-cs ext paper_configs/ase-17/gzip_0.case_study distrib_add --distribution uniform --merge-stage +
  vara-cs ext paper_configs/ase-17/gzip_0.case_study release_add --release-type minor`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.CaseStudyPath = args[0]
			strategy, err := model.ParseExtenderStrategy(args[1])
			if err != nil {
				return err
			}
			c.Strategy = strategy
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.MergeStage, "merge-stage", LastStage, "Stage receiving the new revisions, -1 for the last stage, + for a new stage")
	cmd.Flags().Var(&c.Distribution, "distribution", "Sampling method ("+strings.Join(model.SamplingMethodNames(), ", ")+")")
	cmd.Flags().Var(&c.ReleaseType, "release-type", "Release type ("+strings.Join(model.ReleaseTypeNames(), ", ")+")")
	c.Revisions.Register(cmd)

	parent.AddCommand(cmd)
}

// ParseMergeStage resolves a merge stage argument for a case study with
// numStages stages
func ParseMergeStage(value string, numStages int) (int, error) {
	switch value {
	case "", LastStage:
		return max(numStages-1, 0), nil
	case NewStage:
		return numStages, nil
	}

	stage, err := strconv.Atoi(value)
	if err != nil || stage < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMergeStage, value)
	}
	return stage, nil
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	cs, err := casestudy.LoadFromFile(c.CaseStudyPath)
	if err != nil {
		return err
	}

	mergeStage, err := ParseMergeStage(c.MergeStage, cs.NumStages())
	if err != nil {
		return err
	}

	if c.Revisions.Project == "" && c.Revisions.GitPath == "" {
		c.Revisions.Project = cs.ProjectName()
	}
	gitClient, err := c.Revisions.Resolve()
	if err != nil {
		return err
	}
	loadCommitMap, err := c.Revisions.CommitMapLoader(gitClient)
	if err != nil {
		return err
	}
	cmap, err := loadCommitMap()
	if err != nil {
		return fmt.Errorf("failed to load commit map: %w", err)
	}

	if c.Releases == nil {
		c.Releases = release.NewGitProvider(c.Revisions.GitPath)
	}

	opts := c.Revisions.Options()
	opts.MergeStage = mergeStage
	opts.Distribution = c.Distribution.Method
	opts.ReleaseType = c.ReleaseType.Release

	before := len(cs.Revisions())
	if err := extender.Extend(cs, cmap, c.Strategy, opts, c.Releases); err != nil {
		return fmt.Errorf("failed to extend case study: %w", err)
	}

	if _, err := casestudy.Store(cs, c.CaseStudyPath); err != nil {
		return err
	}

	ui.Successf("Added %d revisions to %s", len(cs.Revisions())-before, c.CaseStudyPath)
	return nil
}
