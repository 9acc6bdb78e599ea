package paperconfig

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bjulian5/varats/internal/report"
)

// Package writes a zip archive with the case study files of cfg that match
// filter and the newest result files of the given report types for their
// revisions. Without report types all known types are packaged. Case studies
// are stored under paper_configs/<name>/ and results under results/<project>/.
// It returns the archive paths in write order.
func Package(out io.Writer, cfg *PaperConfig, filter string, reportTypes []report.Type, resultDir string) ([]string, error) {
	entries, err := cfg.Filter(filter)
	if err != nil {
		return nil, err
	}
	if len(reportTypes) == 0 {
		reportTypes = report.Types()
	}

	files := make(map[string]string)
	for _, e := range entries {
		files[path.Join("paper_configs", cfg.Name(), filepath.Base(e.Path))] = e.Path
		for _, rt := range reportTypes {
			results, err := report.NewestResultFiles(e.CaseStudy, resultDir, rt)
			if err != nil {
				return nil, err
			}
			for _, r := range results {
				files[path.Join("results", e.CaseStudy.ProjectName(), filepath.Base(r.Path))] = r.Path
			}
		}
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(out)
	for _, name := range names {
		if err := addFile(zw, name, files[name]); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return names, nil
}

// PackageToFile writes the archive to outPath. A path without extension gets
// .zip appended; any other extension is rejected.
func PackageToFile(outPath string, cfg *PaperConfig, filter string, reportTypes []report.Type, resultDir string) (string, []string, error) {
	switch filepath.Ext(outPath) {
	case "":
		outPath += ".zip"
	case ".zip":
	default:
		return "", nil, fmt.Errorf("output %s must be a .zip file", outPath)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create archive: %w", err)
	}
	names, err := Package(f, cfg, filter, reportTypes, resultDir)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write archive: %w", cerr)
	}
	if err != nil {
		os.Remove(outPath)
		return "", nil, err
	}
	return outPath, names, nil
}

func addFile(zw *zip.Writer, name, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	return nil
}
