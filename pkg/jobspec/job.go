// SPDX-License-Identifier: MPL-2.0

package jobspec

import (
	"errors"
	"fmt"
)

// ErrInvalidJob is the sentinel error wrapped by InvalidJobError.
var ErrInvalidJob = errors.New("invalid job")

type (
	// Job is a named, declarative unit of work: the command to run on every
	// change cycle and the policies that go with it.
	//
	// Optional booleans are pointers so that "not set" can fall back to the
	// global defaults or to the built-in default.
	Job struct {
		// Command is the token list of the invocation, executable first.
		Command []string `json:"command,omitempty" toml:"command,omitempty"`

		// CommandLine is an alternative to Command written as a single
		// shell-style string. It is split by Tokens when Command is empty.
		CommandLine string `json:"command_line,omitempty" toml:"command_line,omitempty"`

		// Ignore lists glob patterns, relative to the package directory, whose
		// changes never trigger the job.
		Ignore []string `json:"ignore,omitempty" toml:"ignore,omitempty"`

		// Env is overlaid on top of the global defaults' env.
		Env map[string]string `json:"env,omitempty" toml:"env,omitempty"`

		NeedStdout   *bool         `json:"need_stdout,omitempty" toml:"need_stdout,omitempty"`
		IgnoredLines []LinePattern `json:"ignored_lines,omitempty" toml:"ignored_lines,omitempty"`
		Analyzer     *AnalyzerRef  `json:"analyzer,omitempty" toml:"analyzer,omitempty"`
		Sound        SoundConfig   `json:"sound,omitempty" toml:"sound,omitempty"`

		// Kill is an optional command used to stop the running job instead of
		// a plain signal.
		Kill []string `json:"kill,omitempty" toml:"kill,omitempty"`

		// ExpandEnvVars enables $NAME substitution in command tokens. Default true.
		ExpandEnvVars *bool `json:"expand_env_vars,omitempty" toml:"expand_env_vars,omitempty"`

		// ExtraneousArgs enables merging of feature flags and additional job
		// arguments. Default true.
		ExtraneousArgs *bool `json:"extraneous_args,omitempty" toml:"extraneous_args,omitempty"`

		// ApplyGitignore makes the job ignore files excluded by git. Default true.
		ApplyGitignore *bool `json:"apply_gitignore,omitempty" toml:"apply_gitignore,omitempty"`

		AllowWarnings bool `json:"allow_warnings,omitempty" toml:"allow_warnings,omitempty"`
		AllowFailures bool `json:"allow_failures,omitempty" toml:"allow_failures,omitempty"`

		// Watch lists extra paths, relative to the package directory, to watch.
		Watch []string `json:"watch,omitempty" toml:"watch,omitempty"`

		// DefaultWatch keeps the default watched paths (src, tests, ...). Default true.
		DefaultWatch *bool `json:"default_watch,omitempty" toml:"default_watch,omitempty"`

		// Workdir overrides the directory the command runs in. A relative
		// path is resolved like any other job path.
		Workdir string `json:"workdir,omitempty" toml:"workdir,omitempty"`

		// OnSuccess is what to do once a run succeeds, e.g. "back" or "job:test".
		OnSuccess Action `json:"on_success,omitempty" toml:"on_success,omitempty"`
	}

	// InvalidJobError is returned when a Job has invalid fields.
	// It collects every field-level error.
	InvalidJobError struct {
		Name        JobName
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidJobError) Error() string {
	return fmt.Sprintf("invalid job %q: %v", e.Name, errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidJob for errors.Is() compatibility.
func (e *InvalidJobError) Unwrap() error { return ErrInvalidJob }

// Tokens returns the job's command token list. When Command is empty and a
// CommandLine is set, the line is split with shell quoting rules.
func (j *Job) Tokens() ([]string, error) {
	if len(j.Command) > 0 || j.CommandLine == "" {
		return append([]string(nil), j.Command...), nil
	}
	return SplitCommandLine(j.CommandLine)
}

// GetExpandEnvVars reports whether $NAME tokens are substituted. Default true.
func (j *Job) GetExpandEnvVars() bool { return boolOr(j.ExpandEnvVars, true) }

// GetExtraneousArgs reports whether feature flags and additional job args are merged. Default true.
func (j *Job) GetExtraneousArgs() bool { return boolOr(j.ExtraneousArgs, true) }

// GetApplyGitignore reports whether git-ignored files are skipped. Default true.
func (j *Job) GetApplyGitignore() bool { return boolOr(j.ApplyGitignore, true) }

// GetDefaultWatch reports whether the default watch paths are kept. Default true.
func (j *Job) GetDefaultWatch() bool { return boolOr(j.DefaultWatch, true) }

// Validate checks every field that can be checked without touching the environment.
// An empty command is not reported here: it only becomes an error once a command
// is requested, after env expansion.
func (j *Job) Validate(name JobName) error {
	var errs []error
	if err := name.Validate(); err != nil {
		errs = append(errs, err)
	}
	if j.Analyzer != nil {
		if err := j.Analyzer.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range j.IgnoredLines {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if j.Sound.BaseVolume != nil {
		if err := j.Sound.BaseVolume.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if j.OnSuccess != "" {
		if err := j.OnSuccess.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(j.Command) == 0 && j.CommandLine != "" {
		if _, err := SplitCommandLine(j.CommandLine); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &InvalidJobError{Name: name, FieldErrors: errs}
	}
	return nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
