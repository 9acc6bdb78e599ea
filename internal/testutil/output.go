package testutil

import (
	"bytes"
	"testing"

	"github.com/bjulian5/varats/internal/ui"
)

// CaptureOutput redirects the ui printers into a buffer until the test ends
func CaptureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevErr := ui.Stdout, ui.Stderr
	ui.Stdout, ui.Stderr = &buf, &buf
	t.Cleanup(func() {
		ui.Stdout, ui.Stderr = prevOut, prevErr
	})
	return &buf
}
