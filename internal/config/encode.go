// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"io"

	"github.com/kpbaks/bacon/pkg/jobspec"

	"github.com/BurntSushi/toml"
)

// FileFromSettings is the inverse of a load: a File that reproduces s.
func FileFromSettings(s *jobspec.Settings) File {
	f := File{
		Features:           s.Features,
		NoDefaultFeatures:  &s.NoDefaultFeatures,
		AllFeatures:        &s.AllFeatures,
		AdditionalJobArgs:  s.AdditionalJobArgs,
		SingleTestCommands: s.SingleTestCommands,
		Jobs:               make(map[string]jobspec.Job, len(s.Jobs)),
	}
	if s.DefaultJob != "" {
		name := s.DefaultJob.String()
		f.DefaultJob = &name
	}
	all := s.AllJobs
	if all.Env != nil || all.NeedStdout != nil || all.IgnoredLines != nil || all.Analyzer != nil {
		f.AllJobs = &all
	}
	for name, job := range s.Jobs {
		f.Jobs[name.String()] = job
	}
	return f
}

// EncodeTOML writes s as a TOML settings file.
func EncodeTOML(w io.Writer, s *jobspec.Settings) error {
	f := FileFromSettings(s)
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}
