package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjulian5/varats/internal/casestudy"
	"github.com/bjulian5/varats/internal/model"
	"github.com/bjulian5/varats/internal/report"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Stdout
	Stdout = &buf
	t.Cleanup(func() { Stdout = prev })
	return &buf
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "7620b81735", ShortHash("7620b817357d6f14356afd004ace2da426cf8c36"))
	assert.Equal(t, "abc", ShortHash("abc"))
}

func TestPromptChoice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "first valid", input: "2\n", expected: 1},
		{name: "retries invalid input", input: "x\n9\n0\n3\n", expected: 2},
		{name: "no trailing newline", input: "1", expected: 0},
		{name: "input ends", input: "nope\n", expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			got := PromptChoice(strings.NewReader(tt.input), "Choose:", []string{"a", "b", "c"})
			assert.Equal(t, tt.expected, got)
			assert.Contains(t, out.String(), "2: b")
		})
	}
}

func newStatusCaseStudy() (*casestudy.CaseStudy, []report.RevisionStatus) {
	cs := casestudy.New("gzip", 0)
	cs.IncludeRevision("aaaaaaaaaaaaaaaa", 1, 0, true)
	cs.IncludeRevision("bbbbbbbbbbbbbbbb", 5, 0, true)
	cs.IncludeRevision("cccccccccccccccc", 3, 1, true)
	cs.NameStage(1, "later")

	statuses := []report.RevisionStatus{
		{HashIDTuple: casestudy.NewHashIDTuple("bbbbbbbbbbbbbbbb", 5), Status: report.StatusSuccess},
		{HashIDTuple: casestudy.NewHashIDTuple("aaaaaaaaaaaaaaaa", 1), Status: report.StatusFailed},
		{HashIDTuple: casestudy.NewHashIDTuple("cccccccccccccccc", 3), Status: report.StatusMissing},
	}
	return cs, statuses
}

func TestRenderCaseStudyStatus(t *testing.T) {
	cs, statuses := newStatusCaseStudy()

	short := RenderCaseStudyStatus("gzip_0", cs, statuses, StatusOptions{Short: true})
	assert.Contains(t, short, "gzip_0")
	assert.Contains(t, short, "(  1/3) processed")
	assert.Contains(t, short, "1/1/0/0/1")
	assert.NotContains(t, short, "\n")

	list := RenderCaseStudyStatus("gzip_0", cs, statuses, StatusOptions{ListRevs: true, Sorted: true})
	assert.Contains(t, list, "bbbbbbbbbb, cccccccccc, aaaaaaaaaa")

	full := RenderCaseStudyStatus("gzip_0", cs, statuses, StatusOptions{})
	assert.Contains(t, full, "aaaaaaaaaa "+IconFailed+" failed")

	staged := RenderCaseStudyStatus("gzip_0", cs, statuses, StatusOptions{WithStages: true})
	assert.Contains(t, staged, "Stage 0")
	assert.Contains(t, staged, "Stage 1: later")
	assert.Less(t, strings.Index(staged, "Stage 1"), strings.Index(staged, "cccccccccc"))
}

func TestRenderCaseStudyTree(t *testing.T) {
	cs := casestudy.New("gzip", 0)
	method := model.SamplingHalfNormal
	cs.IncludeRevisions([]casestudy.HashIDTuple{casestudy.NewHashIDTuple("7620b817357d6f14", 494)}, 0, true, &method, nil)
	cs.NameStage(0, "initial")
	cs.InsertEmptyStage(1)

	out := RenderCaseStudyTree("gzip_0", cs, nil)
	assert.Contains(t, out, "Stage 0: initial [half_norm]")
	assert.Contains(t, out, "(494: #7620b81735)")
	assert.Contains(t, out, "no revisions")

	described := RenderCaseStudyTree("gzip_0", cs, func(hash string) string { return "subject of " + hash[:4] })
	assert.Contains(t, described, "(494: #7620b81735) subject of 7620")

	assert.Contains(t, RenderCaseStudyTree("empty_0", casestudy.New("empty", 0), nil), "no stages")
}

func TestRenderLegendAndTable(t *testing.T) {
	legend := RenderLegend()
	for _, s := range report.AllStatuses() {
		assert.Contains(t, legend, s.String())
	}

	table := RenderStatusTable([]string{"gzip_0"}, []report.Summary{report.Summarize(nil)})
	assert.Contains(t, table, "gzip_0")
	assert.Contains(t, table, "cerror")
}

func TestPrinters(t *testing.T) {
	out := captureStdout(t)
	Successf("stored %s", "gzip_0")
	Infof("%d revisions", 3)
	Println("plain")

	assert.Contains(t, out.String(), "stored gzip_0")
	assert.Contains(t, out.String(), "3 revisions")
	assert.Contains(t, out.String(), "plain")
}

func TestSetDisplayConfig(t *testing.T) {
	prev := Display
	t.Cleanup(func() { SetDisplayConfig(prev) })

	cfg := DefaultConfig()
	cfg.CommitHashDisplayLength = 4
	SetDisplayConfig(cfg)
	assert.Equal(t, "7620", ShortHash("7620b817357d6f14356afd004ace2da426cf8c36"))
}

func TestSeparator(t *testing.T) {
	assert.Equal(t, strings.Repeat("─", 5), Separator(5))
	assert.Equal(t, Display.DefaultTerminalWidth, len([]rune(Separator(0))))
}
