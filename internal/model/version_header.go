package model

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrWrongDocType is returned when a document declares an unexpected type
	ErrWrongDocType = errors.New("wrong document type")
	// ErrVersionTooLow is returned when a document version is below the supported minimum
	ErrVersionTooLow = errors.New("document version too low")
	// ErrMalformedHeader is returned when the header document is missing required fields
	ErrMalformedHeader = errors.New("malformed version header")
)

// VersionHeader is the first document of every versioned file. It names the
// type of the following document and the format version it was written with.
type VersionHeader struct {
	DocType string `yaml:"doc_type"`
	Version int    `yaml:"version"`
}

// NewVersionHeader creates a header for the given document type and version
func NewVersionHeader(docType string, version int) VersionHeader {
	return VersionHeader{DocType: docType, Version: version}
}

// ParseVersionHeader decodes a header document
func ParseVersionHeader(node *yaml.Node) (VersionHeader, error) {
	var raw struct {
		DocType *string `yaml:"doc_type"`
		Version *int    `yaml:"version"`
	}
	if err := node.Decode(&raw); err != nil {
		return VersionHeader{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if raw.DocType == nil {
		return VersionHeader{}, fmt.Errorf("%w: doc_type missing", ErrMalformedHeader)
	}
	if raw.Version == nil {
		return VersionHeader{}, fmt.Errorf("%w: version missing", ErrMalformedHeader)
	}
	return VersionHeader{DocType: *raw.DocType, Version: *raw.Version}, nil
}

// RaiseIfNotType fails unless the header declares docType
func (h VersionHeader) RaiseIfNotType(docType string) error {
	if h.DocType != docType {
		return fmt.Errorf("%w: expected %q but got %q", ErrWrongDocType, docType, h.DocType)
	}
	return nil
}

// RaiseIfVersionIsLessThan fails when the header version is below minVersion
func (h VersionHeader) RaiseIfVersionIsLessThan(minVersion int) error {
	if h.Version < minVersion {
		return fmt.Errorf("%w: %s version %d is less than %d", ErrVersionTooLow, h.DocType, h.Version, minVersion)
	}
	return nil
}
