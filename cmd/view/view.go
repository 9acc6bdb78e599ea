package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjulian5/varats/internal/config"
	"github.com/bjulian5/varats/internal/report"
	"github.com/bjulian5/varats/internal/ui"
)

// ErrNoResult is returned when no result file matches
var ErrNoResult = errors.New("no result found for this report and revision")

// Command opens a result file of one revision in the editor
type Command struct {
	// Arguments
	ReportName string
	CommitHash string

	// Flags
	Project string
	Status  string

	// In is read when choosing between several files without a terminal
	In io.Reader
	// Choose picks one of several matching files. Nil selects interactively.
	Choose func(files []report.ResultFile) (*report.ResultFile, error)
	// Open opens a file with the editor command
	Open func(ctx context.Context, editor, path string) error
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "view <report> <commit_hash>",
		Short: "View a result file of one revision",
		Long: `Open the result file of a report for one revision in $EDITOR (vi when unset).

When several files match, a fuzzy finder lets you choose one.

Example:
  vara-cs view CommitReport 7620b81735
  vara-cs view CR 7620b81735 -p gzip --status failed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.ReportName = args[0]
			c.CommitHash = args[1]
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Project, "project", "p", "", "Only search the results of this project")
	cmd.Flags().StringVar(&c.Status, "status", report.StatusSuccess.String(), "Status of the result file")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	rt, err := report.LookupType(c.ReportName)
	if err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = report.StatusSuccess.String()
	}
	status, err := report.ParseFileStatus(c.Status)
	if err != nil {
		return err
	}

	matches, err := c.findMatches(rt, status)
	if err != nil {
		return err
	}

	var file *report.ResultFile
	switch len(matches) {
	case 0:
		return fmt.Errorf("%w: %s %s", ErrNoResult, rt.Name, c.CommitHash)
	case 1:
		file = &matches[0]
	default:
		if len(matches) > ui.Display.MaxMatchesWithoutWarning {
			ui.Warningf("%d files match %s", len(matches), c.CommitHash)
		}
		file, err = c.choose(matches)
		if err != nil {
			return err
		}
		if file == nil {
			ui.Info("Nothing selected")
			return nil
		}
	}

	editor := config.GetEditor()
	slog.Debug("opening result file", "editor", editor, "path", file.Path)
	if c.Open == nil {
		c.Open = openInEditor
	}
	return c.Open(ctx, editor, file.Path)
}

func (c *Command) findMatches(rt report.Type, status report.FileStatus) ([]report.ResultFile, error) {
	resultDir := config.GetResultDir()
	projects := []string{c.Project}
	if c.Project == "" {
		var err error
		projects, err = report.Projects(resultDir)
		if err != nil {
			return nil, err
		}
	}

	var matches []report.ResultFile
	for _, project := range projects {
		found, err := report.FindResults(resultDir, project, rt, c.CommitHash, status)
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ModTime.After(matches[j].ModTime) })
	return matches, nil
}

func (c *Command) choose(matches []report.ResultFile) (*report.ResultFile, error) {
	if c.Choose != nil {
		return c.Choose(matches)
	}
	if ui.IsInteractive() {
		return ui.SelectResultFile(matches)
	}

	if c.In == nil {
		c.In = os.Stdin
	}
	options := make([]string, 0, len(matches))
	for _, m := range matches {
		options = append(options, m.Path)
	}
	idx := ui.PromptChoice(c.In, "There are multiple matches. Please choose one:", options)
	if idx < 0 {
		return nil, nil
	}
	return &matches[idx], nil
}

// openInEditor runs the editor in the foreground. The editor setting may
// carry arguments, e.g. "code --wait".
func openInEditor(ctx context.Context, editor, path string) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return fmt.Errorf("no editor configured")
	}

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", fields[0], err)
	}
	return nil
}
