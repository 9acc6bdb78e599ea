package status

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bjulian5/varats/internal/common"
	"github.com/bjulian5/varats/internal/config"
	"github.com/bjulian5/varats/internal/paperconfig"
	"github.com/bjulian5/varats/internal/report"
	"github.com/bjulian5/varats/internal/ui"
)

// DefaultReport is used when no report name is given
const DefaultReport = "EmptyReport"

// ErrConflictingFlags is returned for flag combinations that cannot be shown together
var ErrConflictingFlags = errors.New("conflicting flags")

// Command shows the analysis status of the case studies in the current paper config
type Command struct {
	// Arguments
	ReportName string

	// Flags
	FilterRegex string
	PaperConfig string
	Short       bool
	ListRevs    bool
	WithStages  bool
	Sorted      bool
	Legend      bool
	Table       bool
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "status [report]",
		Short: "Show status of the current case studies",
		Long: `Show which revisions of every case study in the current paper config
have results for a report type.

Report types: ` + strings.Join(report.TypeNames(), ", ") + `

Example:
  vara-cs status
  vara-cs status CommitReport --ws
  vara-cs status EMPTY --short --filter-regex 'gzip_.*'
  vara-cs status --table --paper-config ase-17`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.ReportName = args[0]
			}
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().StringVar(&c.FilterRegex, "filter-regex", ".*", "Only show case studies matching this regex")
	command.Flags().StringVar(&c.PaperConfig, "paper-config", "", "Use this paper config instead of the configured one")
	command.Flags().BoolVarP(&c.Short, "short", "s", false, "Only print a short summary")
	command.Flags().BoolVar(&c.ListRevs, "list-revs", false, "Print the revisions of every case study on one line")
	command.Flags().BoolVar(&c.WithStages, "ws", false, "Group revisions by stage")
	command.Flags().BoolVar(&c.Sorted, "sorted", false, "Sort revisions newest first")
	command.Flags().BoolVar(&c.Legend, "legend", false, "Print a legend of the status colors")
	command.Flags().BoolVar(&c.Table, "table", false, "Display status counts as a table")

	parent.AddCommand(command)
}

func (c *Command) Run(ctx context.Context) error {
	if c.Short && c.ListRevs {
		return fmt.Errorf("%w: at most one of --short, --list-revs can be used", ErrConflictingFlags)
	}
	if c.Short && c.WithStages {
		return fmt.Errorf("%w: at most one of --short, --ws can be used", ErrConflictingFlags)
	}

	if c.ReportName == "" {
		c.ReportName = DefaultReport
	}
	rt, err := report.LookupType(c.ReportName)
	if err != nil {
		return err
	}

	cfg, err := common.LoadPaperConfig(c.PaperConfig)
	if err != nil {
		return err
	}
	entries, err := cfg.Filter(c.FilterRegex)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ui.Warningf("No case studies in %s match %q", cfg.Name(), c.FilterRegex)
		return nil
	}

	if c.Legend {
		ui.Println(ui.RenderLegend())
	}

	statuses, err := collectStatuses(ctx, entries, config.GetResultDir(), rt)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(entries))
	summaries := make([]report.Summary, 0, len(entries))
	opts := ui.StatusOptions{Short: c.Short, ListRevs: c.ListRevs, WithStages: c.WithStages, Sorted: c.Sorted}
	for i, e := range entries {
		key := paperconfig.Key(e.CaseStudy)
		if c.Table {
			keys = append(keys, key)
			summaries = append(summaries, report.Summarize(statuses[i]))
			continue
		}
		ui.Println(ui.RenderCaseStudyStatus(key, e.CaseStudy, statuses[i], opts))
	}

	if c.Table {
		ui.Println(ui.RenderStatusTable(keys, summaries))
	}
	return nil
}

// collectStatuses scans the results of all entries concurrently. The result
// is indexed like entries.
func collectStatuses(ctx context.Context, entries []paperconfig.Entry, resultDir string, rt report.Type) ([][]report.RevisionStatus, error) {
	statuses := make([][]report.RevisionStatus, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := report.Status(e.CaseStudy, resultDir, rt)
			if err != nil {
				return err
			}
			statuses[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}
