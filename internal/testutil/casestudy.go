package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjulian5/varats/internal/casestudy"
)

// StoreCaseStudy writes cs into dir and returns the file path
func StoreCaseStudy(t *testing.T, dir string, cs *casestudy.CaseStudy) string {
	t.Helper()
	path, err := casestudy.Store(cs, dir)
	require.NoError(t, err)
	return path
}

// LoadCaseStudy reads the case study at path
func LoadCaseStudy(t *testing.T, path string) *casestudy.CaseStudy {
	t.Helper()
	cs, err := casestudy.LoadFromFile(path)
	require.NoError(t, err)
	return cs
}
