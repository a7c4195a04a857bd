// SPDX-License-Identifier: MPL-2.0

package jobspec

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrInvalidSettings is the sentinel error wrapped by InvalidSettingsError.
var ErrInvalidSettings = errors.New("invalid settings")

type (
	// JobDefaults holds the values every job falls back to when it does not
	// set them itself.
	JobDefaults struct {
		Env          map[string]string `json:"env,omitempty" toml:"env,omitempty"`
		NeedStdout   *bool             `json:"need_stdout,omitempty" toml:"need_stdout,omitempty"`
		IgnoredLines []LinePattern     `json:"ignored_lines,omitempty" toml:"ignored_lines,omitempty"`
		Analyzer     *AnalyzerRef      `json:"analyzer,omitempty" toml:"analyzer,omitempty"`
	}

	// Settings is the process-wide, read-only configuration of a run.
	Settings struct {
		AllJobs JobDefaults

		// Features is a comma-separated feature list forced on every job.
		Features          *string
		NoDefaultFeatures bool
		AllFeatures       bool

		// AdditionalJobArgs are appended to every job's arguments.
		AdditionalJobArgs []string

		// SingleTestCommands lists command prefixes whose test filter accepts a
		// single test name. Scoped runs of such commands only get the first name.
		SingleTestCommands [][]string

		DefaultJob JobName
		Jobs       map[JobName]Job
	}

	// InvalidSettingsError is returned when Settings have invalid fields.
	InvalidSettingsError struct {
		FieldErrors []error
	}
)

// DefaultSingleTestCommands returns the built-in single-test prefixes.
// Vanilla `cargo test` can only be filtered by one test name.
func DefaultSingleTestCommands() [][]string {
	return [][]string{{"cargo", "test"}}
}

// Job returns the job with the given name.
func (s *Settings) Job(name JobName) (Job, bool) {
	j, ok := s.Jobs[name]
	return j, ok
}

// JobNames returns the sorted job names.
func (s *Settings) JobNames() []JobName {
	return slices.Sorted(maps.Keys(s.Jobs))
}

// Validate checks the defaults and every job.
func (s *Settings) Validate() error {
	var errs []error
	if s.AllJobs.Analyzer != nil {
		if err := s.AllJobs.Analyzer.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("all_jobs: %w", err))
		}
	}
	for _, p := range s.AllJobs.IgnoredLines {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("all_jobs: %w", err))
		}
	}
	for _, prefix := range s.SingleTestCommands {
		if len(prefix) == 0 {
			errs = append(errs, errors.New("single_test_commands: empty prefix"))
		}
	}
	for _, name := range s.JobNames() {
		job := s.Jobs[name]
		if err := job.Validate(name); err != nil {
			errs = append(errs, err)
		}
	}
	if s.DefaultJob != "" {
		if _, ok := s.Jobs[s.DefaultJob]; !ok {
			errs = append(errs, fmt.Errorf("default_job %q is not defined", s.DefaultJob))
		}
	}
	if len(errs) > 0 {
		return &InvalidSettingsError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidSettingsError) Error() string {
	return fmt.Sprintf("invalid settings: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidSettings for errors.Is() compatibility.
func (e *InvalidSettingsError) Unwrap() error { return ErrInvalidSettings }
