// SPDX-License-Identifier: MPL-2.0

package config

import "github.com/kpbaks/bacon/pkg/jobspec"

// DefaultJobName is the job run when none is requested.
const DefaultJobName jobspec.JobName = "check"

// DefaultJobs returns the built-in job table.
func DefaultJobs() map[jobspec.JobName]jobspec.Job {
	yes := func() *bool { b := true; return &b }
	return map[jobspec.JobName]jobspec.Job{
		"check": {
			Command: []string{"cargo", "check", "--color", "always"},
		},
		"check-all": {
			Command: []string{"cargo", "check", "--all-targets", "--color", "always"},
		},
		"clippy": {
			Command: []string{"cargo", "clippy", "--color", "always"},
		},
		"clippy-all": {
			Command: []string{"cargo", "clippy", "--all-targets", "--color", "always"},
		},
		"test": {
			Command:    []string{"cargo", "test", "--color", "always", "--", "--color", "always"},
			NeedStdout: yes(),
		},
		"nextest": {
			Command:    []string{"cargo", "nextest", "run", "--color", "always", "--hide-progress-bar", "--failure-output", "final"},
			NeedStdout: yes(),
			Analyzer:   analyzer(jobspec.AnalyzerNextest),
		},
		"doc": {
			Command: []string{"cargo", "doc", "--color", "always", "--no-deps"},
		},
		"run": {
			Command:       []string{"cargo", "run", "--color", "always"},
			NeedStdout:    yes(),
			AllowWarnings: true,
		},
	}
}

// DefaultSettings returns the settings used when no file is found.
func DefaultSettings() jobspec.Settings {
	return jobspec.Settings{
		SingleTestCommands: jobspec.DefaultSingleTestCommands(),
		DefaultJob:         DefaultJobName,
		Jobs:               DefaultJobs(),
	}
}

func analyzer(a jobspec.AnalyzerRef) *jobspec.AnalyzerRef { return &a }
