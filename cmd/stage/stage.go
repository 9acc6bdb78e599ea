package stage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bjulian5/varats/internal/casestudy"
	"github.com/bjulian5/varats/internal/ui"
)

// Command is the parent command for all stage subcommands
type Command struct{}

// Register registers the stage command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Edit the stages of a case study",
		Long:  `Commands for naming, inserting and shifting the stages of a case study.`,
	}

	(&NameCommand{}).Register(cmd)
	(&InsertCommand{}).Register(cmd)
	(&ShiftCommand{}).Register(cmd)

	parent.AddCommand(cmd)
}

// NameCommand names a stage of a case study
type NameCommand struct {
	CaseStudyPath string
	Stage         int
	Name          string
}

func (c *NameCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "name <case_study_path> <stage> <name>",
		Short: "Name a stage",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.CaseStudyPath = args[0]
			stage, err := parseIndex("stage", args[1])
			if err != nil {
				return err
			}
			c.Stage = stage
			c.Name = args[2]
			return c.Run(cmd.Context())
		},
	}
	parent.AddCommand(cmd)
}

func (c *NameCommand) Run(ctx context.Context) error {
	err := edit(c.CaseStudyPath, func(cs *casestudy.CaseStudy) error {
		if cs.Stage(c.Stage) == nil {
			return fmt.Errorf("%w: stage %d of %d", casestudy.ErrOutOfBounds, c.Stage, cs.NumStages())
		}
		cs.NameStage(c.Stage, c.Name)
		return nil
	})
	if err != nil {
		return err
	}
	ui.Successf("Named stage %d %q", c.Stage, c.Name)
	return nil
}

// InsertCommand inserts an empty stage into a case study
type InsertCommand struct {
	CaseStudyPath string
	Position      int
	Name          string
}

func (c *InsertCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "insert <case_study_path> <position>",
		Short: "Insert an empty stage",
		Long: `Insert an empty stage at position. Later stages move one position up.
Positions past the last stage append the new stage.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.CaseStudyPath = args[0]
			pos, err := parseIndex("position", args[1])
			if err != nil {
				return err
			}
			c.Position = pos
			return c.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "Name of the new stage")
	parent.AddCommand(cmd)
}

func (c *InsertCommand) Run(ctx context.Context) error {
	var numStages int
	err := edit(c.CaseStudyPath, func(cs *casestudy.CaseStudy) error {
		stage := cs.InsertEmptyStage(c.Position)
		if c.Name != "" {
			stage.SetName(c.Name)
		}
		numStages = cs.NumStages()
		return nil
	})
	if err != nil {
		return err
	}
	ui.Successf("Inserted stage, %d stages now", numStages)
	return nil
}

// ShiftCommand moves stages of a case study
type ShiftCommand struct {
	CaseStudyPath string
	From          int
	Offset        int
}

func (c *ShiftCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "shift <case_study_path> <from> --offset <n>",
		Short: "Shift stages",
		Long: `Move all stages starting at from by offset positions. A positive offset
inserts empty stages in front of from. A negative offset removes the stages
directly before from together with their revisions.

Example:
  vara-cs stage shift paper_configs/ase-17/gzip_0.case_study 1 --offset 2
  vara-cs stage shift paper_configs/ase-17/gzip_0.case_study 3 --offset=-1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.CaseStudyPath = args[0]
			from, err := parseIndex("from", args[1])
			if err != nil {
				return err
			}
			c.From = from
			return c.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&c.Offset, "offset", 0, "Number of positions to move the stages")
	_ = cmd.MarkFlagRequired("offset")
	parent.AddCommand(cmd)
}

func (c *ShiftCommand) Run(ctx context.Context) error {
	var numStages int
	err := edit(c.CaseStudyPath, func(cs *casestudy.CaseStudy) error {
		if err := cs.ShiftStage(c.From, c.Offset); err != nil {
			return err
		}
		numStages = cs.NumStages()
		return nil
	})
	if err != nil {
		return err
	}
	ui.Successf("Shifted stages from %d by %d, %d stages now", c.From, c.Offset, numStages)
	return nil
}

// storeCaseStudy writes edited case studies
var storeCaseStudy = casestudy.Store

// edit loads a case study, applies fn and stores the result. Nothing is
// written when fn fails.
func edit(path string, fn func(cs *casestudy.CaseStudy) error) error {
	cs, err := casestudy.LoadFromFile(path)
	if err != nil {
		return err
	}
	if err := fn(cs); err != nil {
		return err
	}
	_, err = storeCaseStudy(cs, path)
	return err
}

func parseIndex(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number, got %q", name, value)
	}
	return n, nil
}
