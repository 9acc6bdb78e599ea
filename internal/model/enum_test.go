package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSamplingMethod(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    SamplingMethod
		expectError bool
	}{
		{name: "uniform", input: "uniform", expected: SamplingUniform},
		{name: "half normal", input: "half_norm", expected: SamplingHalfNormal},
		{name: "unknown", input: "normal", expectError: true},
		{name: "case sensitive", input: "Uniform", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSamplingMethod(tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownName))
				assert.Contains(t, err.Error(), "uniform, half_norm")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestEnumNames(t *testing.T) {
	assert.Equal(t, []string{"uniform", "half_norm"}, SamplingMethodNames())
	assert.Equal(t, []string{"major", "minor", "patch"}, ReleaseTypeNames())
	assert.Equal(t, []string{"simple_add", "distrib_add", "smooth_plot", "per_year_add", "release_add"}, ExtenderStrategyNames())
}

func TestEnumString_Unknown(t *testing.T) {
	assert.Equal(t, "SamplingMethod(0)", SamplingMethod(0).String())
	assert.Equal(t, "ReleaseType(9)", ReleaseType(9).String())
}

func TestParseExtenderStrategy(t *testing.T) {
	for _, name := range ExtenderStrategyNames() {
		s, err := ParseExtenderStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	_, err := ParseExtenderStrategy("random_add")
	assert.True(t, errors.Is(err, ErrUnknownName))
}

func TestReleaseType_Includes(t *testing.T) {
	tests := []struct {
		name      string
		selection ReleaseType
		release   ReleaseType
		expected  bool
	}{
		{name: "major includes major", selection: ReleaseMajor, release: ReleaseMajor, expected: true},
		{name: "major excludes minor", selection: ReleaseMajor, release: ReleaseMinor, expected: false},
		{name: "minor includes major", selection: ReleaseMinor, release: ReleaseMajor, expected: true},
		{name: "minor excludes patch", selection: ReleaseMinor, release: ReleasePatch, expected: false},
		{name: "patch includes all", selection: ReleasePatch, release: ReleaseMinor, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.selection.Includes(tt.release))
		})
	}
}

func TestEnumYAML(t *testing.T) {
	type doc struct {
		Method  SamplingMethod `yaml:"method"`
		Release ReleaseType    `yaml:"release"`
	}

	out, err := yaml.Marshal(doc{Method: SamplingHalfNormal, Release: ReleaseMinor})
	require.NoError(t, err)
	assert.Equal(t, "method: half_norm\nrelease: minor\n", string(out))

	var decoded doc
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, SamplingHalfNormal, decoded.Method)
	assert.Equal(t, ReleaseMinor, decoded.Release)

	err = yaml.Unmarshal([]byte("method: gaussian\n"), &decoded)
	assert.True(t, errors.Is(err, ErrUnknownName))
}

func TestEnumFlags(t *testing.T) {
	var method SamplingMethodFlag
	assert.Equal(t, "", method.String())
	assert.Equal(t, "sampling-method", method.Type())
	require.NoError(t, method.Set("uniform"))
	require.NotNil(t, method.Method)
	assert.Equal(t, SamplingUniform, *method.Method)
	assert.Equal(t, "uniform", method.String())
	assert.Error(t, method.Set("bogus"))
	assert.Equal(t, SamplingUniform, *method.Method, "failed Set keeps previous value")

	var release ReleaseTypeFlag
	assert.Equal(t, "", release.String())
	require.NoError(t, release.Set("patch"))
	assert.Equal(t, ReleasePatch, *release.Release)
	assert.Equal(t, "release-type", release.Type())
}
