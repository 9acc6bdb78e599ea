package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// GetTerminalWidth returns the current terminal width in columns, or
// Display.DefaultTerminalWidth when stdout is not a terminal.
func GetTerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return Display.DefaultTerminalWidth
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return Display.DefaultTerminalWidth
	}
	return width
}

// IsInteractive reports whether stdin and stdout are terminals
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Separator renders a dimmed horizontal line. A width <= 0 spans the terminal.
func Separator(width int) string {
	if width <= 0 {
		width = GetTerminalWidth()
	}
	return DimStyle.Render(strings.Repeat("─", width))
}
