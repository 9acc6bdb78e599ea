// Package paperconfig manages a folder of case studies that belong together,
// typically the case studies evaluated for one paper.
package paperconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bjulian5/varats/internal/casestudy"
)

// ErrNoPaperConfig is returned when no paper config is selected
var ErrNoPaperConfig = errors.New("no paper config selected")

// Entry is a loaded case study together with the file it was read from
type Entry struct {
	Path      string
	CaseStudy *casestudy.CaseStudy
}

// PaperConfig is a directory of case study files
type PaperConfig struct {
	path    string
	entries []Entry
}

// Path resolves the directory of the paper config current inside folder
func Path(folder, current string) (string, error) {
	if current == "" {
		return "", fmt.Errorf("%w: set paper_config.current_config or pass --paper-config", ErrNoPaperConfig)
	}
	return filepath.Join(folder, current), nil
}

// Load reads all case studies of the paper config at dir
func Load(dir string) (*PaperConfig, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("failed to open paper config %s: %w", dir, err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*"+casestudy.FileExtension))
	if err != nil {
		return nil, fmt.Errorf("failed to list case studies: %w", err)
	}

	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		cs, err := casestudy.LoadFromFile(file)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Path: file, CaseStudy: cs})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].CaseStudy, entries[j].CaseStudy
		if a.ProjectName() != b.ProjectName() {
			return a.ProjectName() < b.ProjectName()
		}
		return a.Version() < b.Version()
	})
	return &PaperConfig{path: dir, entries: entries}, nil
}

// Dir returns the paper config directory
func (p *PaperConfig) Dir() string {
	return p.path
}

// Name returns the name of the paper config
func (p *PaperConfig) Name() string {
	return filepath.Base(p.path)
}

// Entries returns all case studies with their files
func (p *PaperConfig) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// CaseStudies returns all case studies ordered by project and version
func (p *PaperConfig) CaseStudies() []*casestudy.CaseStudy {
	result := make([]*casestudy.CaseStudy, 0, len(p.entries))
	for _, e := range p.entries {
		result = append(result, e.CaseStudy)
	}
	return result
}

// ForProject returns the case studies of one project
func (p *PaperConfig) ForProject(project string) []*casestudy.CaseStudy {
	var result []*casestudy.CaseStudy
	for _, e := range p.entries {
		if e.CaseStudy.ProjectName() == project {
			result = append(result, e.CaseStudy)
		}
	}
	return result
}

// HasCaseStudies reports whether the paper config contains project
func (p *PaperConfig) HasCaseStudies(project string) bool {
	return len(p.ForProject(project)) > 0
}

// Filter returns the entries whose "{project}_{version}" matches pattern at
// its start
func (p *PaperConfig) Filter(pattern string) ([]Entry, error) {
	re, err := compileFilter(pattern)
	if err != nil {
		return nil, err
	}

	var result []Entry
	for _, e := range p.entries {
		if re.MatchString(Key(e.CaseStudy)) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Key identifies a case study inside a paper config
func Key(cs *casestudy.CaseStudy) string {
	return fmt.Sprintf("%s_%d", cs.ProjectName(), cs.Version())
}

func compileFilter(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
	}
	return re, nil
}
