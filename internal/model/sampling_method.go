package model

import "gopkg.in/yaml.v3"

// SamplingMethod describes how the revisions of a stage were chosen
type SamplingMethod int

const (
	SamplingUniform SamplingMethod = iota + 1
	SamplingHalfNormal
)

var samplingMethods = newEnumTable("SamplingMethod", map[SamplingMethod]string{
	SamplingUniform:    "uniform",
	SamplingHalfNormal: "half_norm",
})

func (m SamplingMethod) String() string {
	return samplingMethods.name(m)
}

// ParseSamplingMethod looks up a sampling method by its persisted name
func ParseSamplingMethod(name string) (SamplingMethod, error) {
	return samplingMethods.parse(name)
}

// SamplingMethodNames lists all valid sampling method names
func SamplingMethodNames() []string {
	return samplingMethods.allNames()
}

func (m SamplingMethod) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *SamplingMethod) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseSamplingMethod(node.Value)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
