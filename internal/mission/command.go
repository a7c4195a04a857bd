// SPDX-License-Identifier: MPL-2.0

package mission

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/kpbaks/bacon/pkg/jobspec"
)

const (
	argDoubleDash        = "--"
	argFeatures          = "--features"
	argNoDefaultFeatures = "--no-default-features"
	argAllFeatures       = "--all-features"
)

// ErrEmptyCommand is wrapped by ConfigurationError when a job has no command.
var ErrEmptyCommand = errors.New("empty command")

type (
	// CommandSpec is the fully resolved invocation handed to the process engine.
	CommandSpec struct {
		Executable string
		Args       []string
		// Dir is the working directory.
		Dir string
		// Env is overlaid on the engine's base environment.
		Env map[string]string
		// NeedStdout tells the engine to capture stdout as well as stderr.
		NeedStdout bool
	}

	// ConfigurationError reports a job that cannot be turned into a command.
	// The caller skips the run; the watch loop keeps going.
	ConfigurationError struct {
		Job string
		Err error
	}
)

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in job %s: %v", e.Job, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// BuildCommand assembles the command for this cycle. It reads the environment
// for $NAME expansion, so the result must not be cached across cycles.
func (m *Mission) BuildCommand() (*CommandSpec, error) {
	tokens, err := m.Job.Tokens()
	if err != nil {
		return nil, &ConfigurationError{Job: m.JobRef.BadgeLabel(), Err: err}
	}
	if m.Job.GetExpandEnvVars() {
		for i, token := range tokens {
			tokens[i] = ExpandEnv(token, m.lookupEnv, func(ref string) {
				m.logger().Warn("variable not found in env", "variable", ref)
			})
		}
	}
	if len(tokens) == 0 {
		return nil, &ConfigurationError{Job: m.JobRef.BadgeLabel(), Err: ErrEmptyCommand}
	}

	settings := m.settings()
	singleTest := settings.SingleTestCommands
	if singleTest == nil {
		singleTest = jobspec.DefaultSingleTestCommands()
	}
	tokens = appendScope(tokens, m.JobRef.Scope, singleTest)

	spec := &CommandSpec{
		Executable: tokens[0],
		Dir:        m.WorkingDirectory(),
		Env:        mergeEnv(settings.AllJobs.Env, m.Job.Env),
		NeedStdout: m.NeedStdout(),
	}
	if !m.Job.GetExtraneousArgs() {
		spec.Args = append([]string{}, tokens[1:]...)
		m.logger().Debug("command", "spec", spec)
		return spec, nil
	}

	candidates := slices.Concat(tokens[1:], settings.AdditionalJobArgs)
	spec.Args = m.mergeFeatureArgs(candidates)
	m.logger().Debug("command", "spec", spec)
	return spec, nil
}

// mergeFeatureArgs applies the global feature settings to the job's arguments.
// Arguments after a "--" separator belong to the program being run, not to the
// build tool, and are appended untouched after the feature flags.
func (m *Mission) mergeFeatureArgs(candidates []string) []string {
	s := m.settings()
	args := make([]string, 0, len(candidates)+3)

	var (
		noDefaultFeaturesDone bool
		featuresDone          bool
		lastIsFeatures        bool
		tail                  []string
		hasDoubleDash         bool
	)
	for i, arg := range candidates {
		if arg == argDoubleDash {
			hasDoubleDash = true
			tail = candidates[i+1:]
			break
		}
		switch {
		case lastIsFeatures:
			lastIsFeatures = false
			if s.AllFeatures {
				m.logger().Debug("ignoring job features given along --all-features", "features", arg)
				continue
			}
			featuresDone = true
			switch {
			case s.Features != nil && !s.NoDefaultFeatures:
				args = append(args, argFeatures, MergeFeatures(arg, *s.Features))
			case s.Features != nil:
				// Global features replace the job's own.
				args = append(args, argFeatures, *s.Features)
			case s.NoDefaultFeatures:
				// No features at all.
			default:
				args = append(args, argFeatures, arg)
			}
		case arg == argNoDefaultFeatures:
			noDefaultFeaturesDone = true
			args = append(args, arg)
		case arg == argFeatures:
			lastIsFeatures = true
		default:
			args = append(args, arg)
		}
	}

	if s.NoDefaultFeatures && !noDefaultFeaturesDone {
		args = append(args, argNoDefaultFeatures)
	}
	if s.AllFeatures {
		args = append(args, argAllFeatures)
	}
	if !featuresDone && s.Features != nil {
		if s.AllFeatures {
			m.logger().Debug("not using features because of --all-features", "features", *s.Features)
		} else {
			args = append(args, argFeatures, *s.Features)
		}
	}
	if hasDoubleDash {
		args = append(args, argDoubleDash)
		args = append(args, tail...)
	}
	return args
}

func mergeEnv(global, job map[string]string) map[string]string {
	env := make(map[string]string, len(global)+len(job))
	maps.Copy(env, global)
	maps.Copy(env, job)
	return env
}

// Argv returns the executable followed by its arguments.
func (c *CommandSpec) Argv() []string {
	return append([]string{c.Executable}, c.Args...)
}

// Environ overlays Env on base, a list of KEY=VALUE entries such as
// os.Environ(). Overridden keys keep their position; new keys are appended
// in sorted order.
func (c *CommandSpec) Environ(base []string) []string {
	out := make([]string, 0, len(base)+len(c.Env))
	seen := make(map[string]bool, len(c.Env))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if value, ok := c.Env[key]; ok {
			if !seen[key] {
				out = append(out, key+"="+value)
				seen[key] = true
			}
			continue
		}
		out = append(out, kv)
	}
	for _, key := range slices.Sorted(maps.Keys(c.Env)) {
		if !seen[key] {
			out = append(out, key+"="+c.Env[key])
		}
	}
	return out
}

// String renders the command line with shell-style quoting where needed.
func (c *CommandSpec) String() string {
	argv := c.Argv()
	quoted := make([]string, len(argv))
	for i, a := range argv {
		if a == "" || strings.ContainsAny(a, " \t\n\"'\\$`") {
			quoted[i] = strconv.Quote(a)
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}
