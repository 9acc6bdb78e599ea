package show

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bjulian5/varats/internal/casestudy"
	"github.com/bjulian5/varats/internal/git"
	"github.com/bjulian5/varats/internal/paperconfig"
	"github.com/bjulian5/varats/internal/ui"
)

// Command shows the stages and revisions of a case study
type Command struct {
	// Arguments
	CaseStudyPath string

	// Flags
	GitPath string
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <case_study_path>",
		Short: "Show the stages of a case study",
		Long: `Show all stages of a case study with their names, sampling metadata and revisions.

With --git-path the commit subject of every revision is shown as well.

Example:
  vara-cs show paper_configs/ase-17/gzip_0.case_study
  vara-cs show paper_configs/ase-17/gzip_0.case_study --git-path ~/src/gzip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.CaseStudyPath = args[0]
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.GitPath, "git-path", "", "Repository to read commit subjects from")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	cs, err := casestudy.LoadFromFile(c.CaseStudyPath)
	if err != nil {
		return err
	}

	var describe func(hash string) string
	if c.GitPath != "" {
		gitClient, err := git.NewClientAt(c.GitPath)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", c.GitPath, err)
		}
		describe = func(hash string) string {
			subject, err := gitClient.CommitSubject(hash)
			if err != nil {
				slog.Debug("no commit subject", "hash", hash, "error", err)
				return ""
			}
			return subject
		}
	}

	ui.Println(ui.RenderCaseStudyTree(paperconfig.Key(cs), cs, describe))
	ui.Println(ui.Separator(40))
	ui.Println(ui.Dim(fmt.Sprintf("%d stages, %d revisions", cs.NumStages(), len(cs.Revisions()))))
	return nil
}
