package model

import "github.com/spf13/pflag"

var (
	_ pflag.Value = (*SamplingMethodFlag)(nil)
	_ pflag.Value = (*ReleaseTypeFlag)(nil)
)

// SamplingMethodFlag is an optional sampling method command line flag
type SamplingMethodFlag struct {
	Method *SamplingMethod
}

func (f *SamplingMethodFlag) String() string {
	if f.Method == nil {
		return ""
	}
	return f.Method.String()
}

func (f *SamplingMethodFlag) Set(name string) error {
	m, err := ParseSamplingMethod(name)
	if err != nil {
		return err
	}
	f.Method = &m
	return nil
}

func (f *SamplingMethodFlag) Type() string {
	return "sampling-method"
}

// ReleaseTypeFlag is an optional release type command line flag
type ReleaseTypeFlag struct {
	Release *ReleaseType
}

func (f *ReleaseTypeFlag) String() string {
	if f.Release == nil {
		return ""
	}
	return f.Release.String()
}

func (f *ReleaseTypeFlag) Set(name string) error {
	r, err := ParseReleaseType(name)
	if err != nil {
		return err
	}
	f.Release = &r
	return nil
}

func (f *ReleaseTypeFlag) Type() string {
	return "release-type"
}
