// Package report names result files of analysis runs and computes the
// analysis status of case studies from them.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUnknownReportType is returned for unknown report names or shorthands
	ErrUnknownReportType = errors.New("unknown report type")
	// ErrInvalidFileName is returned for file names that are not result files
	ErrInvalidFileName = errors.New("not a result file name")
)

// Type describes one kind of report produced by an analysis
type Type struct {
	Name      string
	Shorthand string
	// FileType is the file extension without dot. Empty for plain files.
	FileType string
}

// Ext returns the file extension including the dot, or "" for plain files
func (t Type) Ext() string {
	if t.FileType == "" {
		return ""
	}
	return "." + t.FileType
}

var registry = []Type{
	{Name: "CommitReport", Shorthand: "CR", FileType: "yaml"},
	{Name: "EmptyReport", Shorthand: "EMPTY", FileType: "txt"},
	{Name: "TimeReport", Shorthand: "TR", FileType: ""},
	{Name: "SZZUnleashedReport", Shorthand: "SZZR", FileType: "yaml"},
	{Name: "PointsToAnalysisPerfReport", Shorthand: "PTAPR", FileType: "json"},
	{Name: "BlameReport", Shorthand: "BR", FileType: "yaml"},
}

// Types returns all known report types ordered by name
func Types() []Type {
	types := append([]Type(nil), registry...)
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types
}

// TypeNames returns the names of all known report types
func TypeNames() []string {
	var names []string
	for _, t := range Types() {
		names = append(names, t.Name)
	}
	return names
}

// LookupType finds a report type by name or shorthand
func LookupType(name string) (Type, error) {
	for _, t := range registry {
		if t.Name == name || t.Shorthand == name {
			return t, nil
		}
	}
	return Type{}, fmt.Errorf("%w: %s (known: %s)", ErrUnknownReportType, name, strings.Join(TypeNames(), ", "))
}

// FileInfo holds the parts of a result file name
type FileInfo struct {
	Shorthand string
	Project   string
	Binary    string
	// Version is the analysed revision, usually an abbreviated commit hash
	Version string
	UUID    uuid.UUID
	Status  FileStatus
	// Ext includes the leading dot, or is empty
	Ext string
}

// FileName builds {shorthand}-{project}-{binary}-{version}_{uuid}_{status}{ext}
func FileName(shorthand, project, binary, version string, id uuid.UUID, status FileStatus, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s-%s-%s-%s_%s_%s%s", shorthand, project, binary, version, id, status, ext)
}

// FileName returns the file name of a result file described by info
func (info FileInfo) FileName() string {
	return FileName(info.Shorthand, info.Project, info.Binary, info.Version, info.UUID, info.Status, info.Ext)
}

// ParseFileName splits a result file name into its parts. The binary name may
// contain dashes; the project name may not.
func ParseFileName(name string) (FileInfo, error) {
	rest, tail, ok := cutLast(name, "_")
	if !ok {
		return FileInfo{}, fmt.Errorf("%w: %s", ErrInvalidFileName, name)
	}
	statusPart, ext := tail, ""
	if dot := strings.IndexByte(tail, '.'); dot >= 0 {
		statusPart, ext = tail[:dot], tail[dot:]
	}
	head, uuidPart, ok := cutLast(rest, "_")
	if !ok {
		return FileInfo{}, fmt.Errorf("%w: %s", ErrInvalidFileName, name)
	}

	status, err := ParseFileStatus(statusPart)
	if err != nil {
		return FileInfo{}, fmt.Errorf("%w: %s: %v", ErrInvalidFileName, name, err)
	}
	id, err := uuid.Parse(uuidPart)
	if err != nil {
		return FileInfo{}, fmt.Errorf("%w: %s: invalid uuid: %v", ErrInvalidFileName, name, err)
	}

	fields := strings.Split(head, "-")
	if len(fields) < 4 {
		return FileInfo{}, fmt.Errorf("%w: %s", ErrInvalidFileName, name)
	}
	return FileInfo{
		Shorthand: fields[0],
		Project:   fields[1],
		Binary:    strings.Join(fields[2:len(fields)-1], "-"),
		Version:   fields[len(fields)-1],
		UUID:      id,
		Status:    status,
		Ext:       ext,
	}, nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
