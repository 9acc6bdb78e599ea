package gen

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjulian5/varats/internal/casestudy"
	"github.com/bjulian5/varats/internal/common"
	"github.com/bjulian5/varats/internal/extender"
	"github.com/bjulian5/varats/internal/model"
	"github.com/bjulian5/varats/internal/release"
	"github.com/bjulian5/varats/internal/ui"
)

// Command generates a new case study into a paper config
type Command struct {
	// Arguments
	PaperConfigPath string
	Distribution    model.SamplingMethod

	// Flags
	Version     int
	ReleaseType model.ReleaseTypeFlag
	Revisions   common.RevisionFlags

	// Clients (can be mocked in tests)
	Releases release.Provider
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "gen <paper_config_path> <distribution>",
		Short: "Generate a case study",
		Long: `Generate a new case study for a project and store it in a paper config.

Revisions are sampled from the commit history between --start and --end with
the given distribution (` + strings.Join(model.SamplingMethodNames(), ", ") + `).

Example:
  vara-cs gen paper_configs/ase-17 half_norm --git-path ~/src/gzip --num-rev 20
  vara-cs gen paper_configs/ase-17 uniform -p gzip --revs-per-year 5 --revs-year-sep`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.PaperConfigPath = args[0]
			method, err := model.ParseSamplingMethod(args[1])
			if err != nil {
				return err
			}
			c.Distribution = method
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&c.Version, "version", "v", 0, "Case study version")
	cmd.Flags().Var(&c.ReleaseType, "release-type", "Also add release revisions of this type ("+strings.Join(model.ReleaseTypeNames(), ", ")+")")
	c.Revisions.Register(cmd)

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	if _, err := os.Stat(c.PaperConfigPath); err != nil {
		return fmt.Errorf("paper config path %s does not exist", c.PaperConfigPath)
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
	opts.ReleaseType = c.ReleaseType.Release

	cs, err := extender.Generate(c.Distribution, cmap, c.Version, c.Revisions.Project, opts, c.Releases)
	if err != nil {
		return fmt.Errorf("failed to generate case study: %w", err)
	}

	path, err := casestudy.Store(cs, c.PaperConfigPath)
	if err != nil {
		return err
	}

	ui.Successf("Created case study %s with %d revisions", path, len(cs.Revisions()))
	return nil
}
