package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bjulian5/varats/internal/report"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple

	// Message colors
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	// Result file status colors
	ColorStatusSuccess = lipgloss.Color("#10B981") // Green
	ColorStatusFailed  = lipgloss.Color("#EF4444") // Red
	ColorStatusCError  = lipgloss.Color("#F59E0B") // Amber
	ColorStatusBlocked = lipgloss.Color("#8B5CF6") // Purple
	ColorStatusMissing = lipgloss.Color("#6B7280") // Gray

	ColorTextMuted  = lipgloss.Color("#9CA3AF")
	ColorTextBright = lipgloss.Color("#FFFFFF")
	ColorBgMuted    = lipgloss.Color("#111827")
	ColorBorder     = lipgloss.Color("#374151")
)

var (
	BoldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTextBright)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// Message styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// Tree styles
var (
	TreeRootStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	TreeStageStyle = lipgloss.NewStyle().
			Bold(true)

	TreeEnumeratorStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextBright).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableRowAltStyle = lipgloss.NewStyle().
				Background(ColorBgMuted).
				Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)
)

// GetStatusColor returns the color for a result file status
func GetStatusColor(status report.FileStatus) lipgloss.Color {
	switch status {
	case report.StatusSuccess:
		return ColorStatusSuccess
	case report.StatusFailed:
		return ColorStatusFailed
	case report.StatusCompileError:
		return ColorStatusCError
	case report.StatusBlocked:
		return ColorStatusBlocked
	default:
		return ColorStatusMissing
	}
}

// GetStatusStyle returns the style for a result file status
func GetStatusStyle(status report.FileStatus) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(GetStatusColor(status))
	if status == report.StatusSuccess {
		style = style.Bold(true)
	}
	return style
}
