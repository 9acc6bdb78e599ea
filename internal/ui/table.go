package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bjulian5/varats/internal/report"
)

// NewTable creates a bordered table with alternating row backgrounds
func NewTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		BorderRow(false).
		BorderColumn(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			return rowStyle(row)
		})
}

// newStatusTable creates a table whose status count columns are colored.
// Column 0 holds the case study, columns 1..n the statuses in order.
func newStatusTable(statuses []report.FileStatus) *table.Table {
	return NewTable().StyleFunc(func(row, col int) lipgloss.Style {
		style := rowStyle(row)
		if row != table.HeaderRow && col >= 1 && col <= len(statuses) {
			style = style.Foreground(GetStatusColor(statuses[col-1]))
		}
		return style
	})
}

func rowStyle(row int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return TableHeaderStyle
	case row%2 == 0:
		return TableCellStyle
	default:
		return TableRowAltStyle
	}
}
