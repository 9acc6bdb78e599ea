package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/varats/internal/report"
)

// WriteResultFile creates an empty result file for revision under
// resultDir/<project>/ with the given modification time and returns its path
func WriteResultFile(t *testing.T, resultDir string, rt report.Type, project, revision string,
	status report.FileStatus, modTime time.Time) string {
	t.Helper()
	dir := report.ProjectDir(resultDir, project)
	require.NoError(t, os.MkdirAll(dir, 0755))

	name := report.FileName(rt.Shorthand, project, "bin", revision, uuid.New(), status, rt.Ext())
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(status.String()+"\n"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}
