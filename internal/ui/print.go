package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Output destinations of all printers. Tests may replace them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func printMessage(w io.Writer, style lipgloss.Style, icon, msg string) {
	fmt.Fprintln(w, style.Render(icon+" "+msg))
}

// Success prints msg with a checkmark
func Success(msg string) { printMessage(Stdout, SuccessStyle, "✓", msg) }

// Successf is Success with formatting
func Successf(format string, args ...any) { Success(fmt.Sprintf(format, args...)) }

// Error prints msg to Stderr with a cross
func Error(msg string) { printMessage(Stderr, ErrorStyle, "✗", msg) }

// Warning prints msg with a warning sign
func Warning(msg string) { printMessage(Stdout, WarningStyle, "⚠", msg) }

// Warningf is Warning with formatting
func Warningf(format string, args ...any) { Warning(fmt.Sprintf(format, args...)) }

// Info prints msg with an info sign
func Info(msg string) { printMessage(Stdout, InfoStyle, "ℹ", msg) }

// Infof is Info with formatting
func Infof(format string, args ...any) { Info(fmt.Sprintf(format, args...)) }

// Println prints msg unstyled
func Println(msg string) {
	fmt.Fprintln(Stdout, msg)
}

// Dim renders dimmed text
func Dim(text string) string {
	return DimStyle.Render(text)
}

// Bold renders bold text
func Bold(text string) string {
	return BoldStyle.Render(text)
}

// Highlight renders text in the primary color
func Highlight(text string) string {
	return HighlightStyle.Render(text)
}
