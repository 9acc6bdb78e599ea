package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/bjulian5/varats/internal/report"
)

func init() {
	// Detect the terminal before the fuzzy finder takes over the screen so no
	// escape sequences leak into its input
	_ = lipgloss.NewStyle().Render("")
	_ = lipgloss.HasDarkBackground()
}

// SelectResultFile presents a fuzzy finder to choose one of several result
// files. It returns nil when the user aborts.
func SelectResultFile(files []report.ResultFile) (*report.ResultFile, error) {
	os.Stdout.Sync()
	os.Stderr.Sync()

	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string {
			return FormatResultFileLine(files[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return FormatResultFilePreview(files[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select result file: %w", err)
	}
	return &files[idx], nil
}

// FormatResultFileLine formats a result file as a single finder line
func FormatResultFileLine(f report.ResultFile) string {
	return fmt.Sprintf("%s %s %s", f.Info.Binary, ShortHash(f.Info.Version), f.ModTime.Format("2006-01-02 15:04"))
}

// FormatResultFilePreview shows the details of a result file
func FormatResultFilePreview(f report.ResultFile) string {
	return fmt.Sprintf("File:     %s\nProject:  %s\nBinary:   %s\nRevision: %s\nRun:      %s\nStatus:   %s\nModified: %s\n",
		f.Path, f.Info.Project, f.Info.Binary, f.Info.Version, f.Info.UUID, f.Info.Status, f.ModTime.Format("2006-01-02 15:04:05"))
}
