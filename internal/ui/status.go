package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bjulian5/varats/internal/casestudy"
	"github.com/bjulian5/varats/internal/report"
)

// Status icons
const (
	IconSuccess = "●"
	IconFailed  = "✗"
	IconCError  = "◆"
	IconBlocked = "◐"
	IconMissing = "○"
)

// StatusIcon returns the icon of a result file status
func StatusIcon(status report.FileStatus) string {
	switch status {
	case report.StatusSuccess:
		return IconSuccess
	case report.StatusFailed:
		return IconFailed
	case report.StatusCompileError:
		return IconCError
	case report.StatusBlocked:
		return IconBlocked
	default:
		return IconMissing
	}
}

// RenderStatus renders a colored icon followed by the status name
func RenderStatus(status report.FileStatus) string {
	return GetStatusStyle(status).Render(StatusIcon(status) + " " + status.String())
}

// RenderRevision renders an abbreviated hash in the color of its status
func RenderRevision(rs report.RevisionStatus) string {
	return GetStatusStyle(rs.Status).Render(ShortHash(rs.CommitHash()))
}

// RenderStatusCounts renders the number of revisions per status as a/b/c/d/e
func RenderStatusCounts(summary report.Summary) string {
	parts := make([]string, 0, len(report.AllStatuses()))
	for _, s := range report.AllStatuses() {
		parts = append(parts, GetStatusStyle(s).Render(fmt.Sprintf("%d", summary.Count(s))))
	}
	return strings.Join(parts, "/")
}

// RenderStatusHeader renders the one line summary of a case study
//
//	CS: gzip_0: (  3/10) processed [3/1/0/0/6]
func RenderStatusHeader(key string, summary report.Summary) string {
	return fmt.Sprintf("CS: %s: (%3d/%d) processed [%s]",
		Bold(key), summary.Count(report.StatusSuccess), summary.Total, RenderStatusCounts(summary))
}

// RenderLegend explains the colors of the status counts
func RenderLegend() string {
	parts := make([]string, 0, len(report.AllStatuses()))
	for _, s := range report.AllStatuses() {
		parts = append(parts, RenderStatus(s))
	}
	return "CaseStudy [" + strings.Join(parts, "/") + "]"
}

// StatusOptions selects the detail level of case study status output
type StatusOptions struct {
	// Short prints only the summary line
	Short bool
	// ListRevs prints the revisions on one line after the summary
	ListRevs bool
	// WithStages groups revisions by stage
	WithStages bool
	// Sorted orders revisions newest first
	Sorted bool
}

// RenderCaseStudyStatus renders the analysis status of cs
func RenderCaseStudyStatus(key string, cs *casestudy.CaseStudy, statuses []report.RevisionStatus, opts StatusOptions) string {
	header := RenderStatusHeader(key, report.Summarize(statuses))
	if opts.Short {
		return header
	}

	if opts.ListRevs {
		revs := make([]string, 0, len(statuses))
		for _, rs := range sortedStatuses(statuses, opts.Sorted) {
			revs = append(revs, RenderRevision(rs))
		}
		return header + "\n    " + strings.Join(revs, ", ")
	}

	t := newTree(header)
	if opts.WithStages {
		for i, stage := range cs.Stages() {
			node := newTree(TreeStageStyle.Render(stageLabel(i, stage)))
			for _, rs := range sortedStatuses(report.StageStatus(stage, statuses), opts.Sorted) {
				node.Child(revisionStatusLine(rs))
			}
			t.Child(node)
		}
		return t.String()
	}

	for _, rs := range sortedStatuses(statuses, opts.Sorted) {
		t.Child(revisionStatusLine(rs))
	}
	return t.String()
}

func revisionStatusLine(rs report.RevisionStatus) string {
	return fmt.Sprintf("%s %s", RenderRevision(rs), RenderStatus(rs.Status))
}

func sortedStatuses(statuses []report.RevisionStatus, sorted bool) []report.RevisionStatus {
	if !sorted {
		return statuses
	}
	result := append([]report.RevisionStatus(nil), statuses...)
	sort.SliceStable(result, func(i, j int) bool { return result[i].CommitID() > result[j].CommitID() })
	return result
}

// RenderStatusTable renders one row per case study with its status counts
func RenderStatusTable(keys []string, summaries []report.Summary) string {
	statuses := report.AllStatuses()
	headers := []string{"Case study"}
	for _, s := range statuses {
		headers = append(headers, s.String())
	}
	headers = append(headers, "total")

	t := newStatusTable(statuses).Headers(headers...)
	for i, key := range keys {
		row := []string{key}
		for _, s := range statuses {
			row = append(row, fmt.Sprintf("%d", summaries[i].Count(s)))
		}
		row = append(row, fmt.Sprintf("%d", summaries[i].Total))
		t.Row(row...)
	}
	return t.String()
}
