package packagecmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjulian5/varats/internal/common"
	"github.com/bjulian5/varats/internal/config"
	"github.com/bjulian5/varats/internal/paperconfig"
	"github.com/bjulian5/varats/internal/report"
	"github.com/bjulian5/varats/internal/ui"
)

// Command packages the current paper config with its results into a zip archive
type Command struct {
	// Flags
	Output      string
	FilterRegex string
	ReportNames []string
	PaperConfig string
	List        bool
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "package -o <output>",
		Short: "Package case studies and their results",
		Long: `Write the case studies of the current paper config and the newest result
files of their revisions into a zip archive. An output without extension gets
.zip appended.

Report types: ` + strings.Join(report.TypeNames(), ", ") + `

Example:
  vara-cs package -o ase-17
  vara-cs package -o gzip.zip --filter-regex 'gzip_.*' --report-names CommitReport,BlameReport`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&c.FilterRegex, "filter-regex", ".*", "Only include case studies matching this regex")
	cmd.Flags().StringSliceVar(&c.ReportNames, "report-names", nil, "Report types to include (all when empty)")
	cmd.Flags().StringVar(&c.PaperConfig, "paper-config", "", "Use this paper config instead of the configured one")
	cmd.Flags().BoolVarP(&c.List, "list", "l", false, "List the packaged files")
	_ = cmd.MarkFlagRequired("output")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	reportTypes := make([]report.Type, 0, len(c.ReportNames))
	for _, name := range c.ReportNames {
		rt, err := report.LookupType(name)
		if err != nil {
			return err
		}
		reportTypes = append(reportTypes, rt)
	}

	cfg, err := common.LoadPaperConfig(c.PaperConfig)
	if err != nil {
		return err
	}

	path, names, err := paperconfig.PackageToFile(c.Output, cfg, c.FilterRegex, reportTypes, config.GetResultDir())
	if err != nil {
		return err
	}

	if c.List {
		for _, name := range names {
			ui.Println(ui.Dim("  " + name))
		}
	}
	ui.Successf("Packaged %d files into %s", len(names), path)
	return nil
}
