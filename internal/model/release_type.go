package model

import "gopkg.in/yaml.v3"

// ReleaseType classifies release commits. Each type includes the types
// above it: a minor selection also contains the major releases.
type ReleaseType int

const (
	ReleaseMajor ReleaseType = iota + 1
	ReleaseMinor
	ReleasePatch
)

var releaseTypes = newEnumTable("ReleaseType", map[ReleaseType]string{
	ReleaseMajor: "major",
	ReleaseMinor: "minor",
	ReleasePatch: "patch",
})

func (r ReleaseType) String() string {
	return releaseTypes.name(r)
}

// Includes reports whether a release of type other belongs to a selection of type r.
func (r ReleaseType) Includes(other ReleaseType) bool {
	return other <= r
}

// ParseReleaseType looks up a release type by its persisted name
func ParseReleaseType(name string) (ReleaseType, error) {
	return releaseTypes.parse(name)
}

// ReleaseTypeNames lists all valid release type names
func ReleaseTypeNames() []string {
	return releaseTypes.allNames()
}

func (r ReleaseType) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

func (r *ReleaseType) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseReleaseType(node.Value)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
