package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bjulian5/varats/internal/casestudy"
)

// RenderCaseStudyTree renders the stages of a case study with their revisions
// Example output:
//
//	gzip_0
//	├─ Stage 0: initial [half_norm]
//	│  ├─ (494: #7620b81735)
//	│  ╰─ (31: #4b1ac7d5ca)
//	╰─ Stage 1
//	   ╰─ no revisions
//
// A non-nil describe adds a description, such as the commit subject, to
// every revision.
func RenderCaseStudyTree(key string, cs *casestudy.CaseStudy, describe func(hash string) string) string {
	t := newTree(TreeRootStyle.Render(key))
	if cs.NumStages() == 0 {
		t.Child(Dim("no stages"))
		return t.String()
	}

	for i, stage := range cs.Stages() {
		node := newTree(TreeStageStyle.Render(stageLabel(i, stage)))
		if stage.Len() == 0 {
			node.Child(Dim("no revisions"))
		}
		for _, rev := range stage.HashIDTuples() {
			line := fmt.Sprintf("(%d: #%s)", rev.CommitID(), Highlight(ShortHash(rev.CommitHash())))
			if describe != nil {
				if desc := describe(rev.CommitHash()); desc != "" {
					line += " " + Dim(desc)
				}
			}
			node.Child(line)
		}
		t.Child(node)
	}
	return t.String()
}

// stageLabel formats "Stage <i>: <name> [<method>, <release>]"
func stageLabel(i int, stage *casestudy.Stage) string {
	label := fmt.Sprintf("Stage %d", i)
	if name, ok := stage.Name(); ok {
		label += ": " + name
	}

	var meta []string
	if m := stage.SamplingMethod(); m != nil {
		meta = append(meta, m.String())
	}
	if r := stage.ReleaseType(); r != nil {
		meta = append(meta, r.String())
	}
	if len(meta) > 0 {
		label += " [" + strings.Join(meta, ", ") + "]"
	}
	return label
}

func newTree(root string) *tree.Tree {
	return tree.Root(root).
		Enumerator(roundedEnumerator()).
		EnumeratorStyle(TreeEnumeratorStyle).
		Indenter(treeIndenter())
}

func roundedEnumerator() tree.Enumerator {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "╰─ "
		}
		return "├─ "
	}
}

func treeIndenter() tree.Indenter {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "   "
		}
		return "│  "
	}
}
