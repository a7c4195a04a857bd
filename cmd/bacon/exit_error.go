// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

// ExitCode is the process status bacon exits with.
type ExitCode int

const (
	// ExitFailure covers every error without a more specific code.
	ExitFailure ExitCode = 1
	// ExitUsage is returned for unknown jobs and malformed job references.
	ExitUsage ExitCode = 2
	// ExitConfig is returned when a job cannot be turned into a command.
	ExitConfig ExitCode = 3
)

// ExitError carries the exit code up to Execute so RunE handlers never call
// os.Exit themselves.
type ExitError struct {
	Code ExitCode
	Err  error
}

func exitWith(code ExitCode, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("bacon exited with code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
