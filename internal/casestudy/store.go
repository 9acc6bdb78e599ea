package casestudy

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bjulian5/varats/internal/model"
	"github.com/bjulian5/varats/internal/yamlutil"
)

const (
	// FileExtension is the suffix of case study files
	FileExtension = ".case_study"
	// DocType is the document type declared in the version header
	DocType = "CaseStudy"
	// CurrentVersion is the file format version written by Store
	CurrentVersion = 1
	// MinVersion is the oldest file format version Load accepts
	MinVersion = 1
)

var (
	// ErrMissingDocument is returned when a case study file lacks the header or body
	ErrMissingDocument = errors.New("missing document")
	// ErrMalformed is returned when the case study body lacks required fields
	ErrMalformed = errors.New("malformed case study")
)

type rawHashID struct {
	CommitHash *string `yaml:"commit_hash"`
	CommitID   *int    `yaml:"commit_id"`
}

type rawStage struct {
	Name           string      `yaml:"name"`
	SamplingMethod string      `yaml:"sampling_method"`
	ReleaseType    string      `yaml:"release_type"`
	Revisions      []rawHashID `yaml:"revisions"`
}

type rawCaseStudy struct {
	ProjectName *string    `yaml:"project_name"`
	Version     *int       `yaml:"version"`
	Stages      []rawStage `yaml:"stages"`
}

// LoadFromFile loads a case study from a file
func LoadFromFile(path string) (*CaseStudy, error) {
	docs, err := yamlutil.LoadDocuments(path)
	if err != nil {
		return nil, err
	}
	cs, err := fromDocuments(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to load case study %s: %w", path, err)
	}
	return cs, nil
}

// Load reads a case study from a stream of a version header and a body document
func Load(r io.Reader) (*CaseStudy, error) {
	docs, err := yamlutil.DecodeDocuments(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse case study: %w", err)
	}
	return fromDocuments(docs)
}

func fromDocuments(docs []*yaml.Node) (*CaseStudy, error) {
	if len(docs) < 1 {
		return nil, fmt.Errorf("%w: version header", ErrMissingDocument)
	}
	header, err := model.ParseVersionHeader(docs[0])
	if err != nil {
		return nil, err
	}
	if err := header.RaiseIfNotType(DocType); err != nil {
		return nil, err
	}
	if err := header.RaiseIfVersionIsLessThan(MinVersion); err != nil {
		return nil, err
	}

	if len(docs) < 2 {
		return nil, fmt.Errorf("%w: case study body", ErrMissingDocument)
	}
	var raw rawCaseStudy
	if err := docs[1].Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return raw.toCaseStudy()
}

func (raw rawCaseStudy) toCaseStudy() (*CaseStudy, error) {
	if raw.ProjectName == nil {
		return nil, fmt.Errorf("%w: project_name missing", ErrMalformed)
	}
	if raw.Version == nil {
		return nil, fmt.Errorf("%w: version missing", ErrMalformed)
	}

	stages := make([]*Stage, 0, len(raw.Stages))
	for i, rs := range raw.Stages {
		stage, err := rs.toStage()
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		stages = append(stages, stage)
	}
	return New(*raw.ProjectName, *raw.Version, stages...), nil
}

func (rs rawStage) toStage() (*Stage, error) {
	stage := NewStage()
	if rs.Name != "" {
		stage.SetName(rs.Name)
	}
	if rs.SamplingMethod != "" {
		m, err := model.ParseSamplingMethod(rs.SamplingMethod)
		if err != nil {
			return nil, err
		}
		stage.SetSamplingMethod(m)
	}
	if rs.ReleaseType != "" {
		r, err := model.ParseReleaseType(rs.ReleaseType)
		if err != nil {
			return nil, err
		}
		stage.SetReleaseType(r)
	}

	for j, rev := range rs.Revisions {
		if rev.CommitHash == nil || rev.CommitID == nil {
			return nil, fmt.Errorf("%w: revision %d needs commit_hash and commit_id", ErrMalformed, j)
		}
		// Loaded stages keep the stored order and duplicates untouched.
		stage.revisions = append(stage.revisions, NewHashIDTuple(*rev.CommitHash, *rev.CommitID))
	}
	return stage, nil
}

// FileName returns the default file name for a case study
func FileName(cs *CaseStudy) string {
	return fmt.Sprintf("%s_%d%s", cs.ProjectName(), cs.Version(), FileExtension)
}

// Store writes the case study to location, which is either a direct path to
// a .case_study file or a directory (paper config) that receives a file
// named after the project and version. It returns the written path.
func Store(cs *CaseStudy, location string) (string, error) {
	path := location
	if filepath.Ext(location) != FileExtension {
		path = filepath.Join(location, FileName(cs))
	}

	header := model.NewVersionHeader(DocType, CurrentVersion)
	if err := yamlutil.StoreDocuments(path, header, cs.Dict()); err != nil {
		return "", fmt.Errorf("failed to store case study: %w", err)
	}
	return path, nil
}
