// SPDX-License-Identifier: MPL-2.0

package jobspec

import (
	"errors"
	"fmt"
)

const (
	// AnalyzerStandard understands the default cargo/rustc diagnostic output.
	AnalyzerStandard AnalyzerRef = "standard"
	// AnalyzerNextest understands cargo-nextest output.
	AnalyzerNextest AnalyzerRef = "nextest"
	// AnalyzerGoTest understands `go test` and `go vet` output.
	AnalyzerGoTest AnalyzerRef = "go_test"
	// AnalyzerEslint understands eslint's stylish formatter.
	AnalyzerEslint AnalyzerRef = "eslint"
	// AnalyzerPytest understands pytest output.
	AnalyzerPytest AnalyzerRef = "python_pytest"
	// AnalyzerCargoJSON understands `--message-format json-diagnostic-rendered-ansi`.
	AnalyzerCargoJSON AnalyzerRef = "cargo_json"

	// DefaultAnalyzer is used when neither the job nor the global defaults pick one.
	DefaultAnalyzer = AnalyzerStandard
)

// ErrInvalidAnalyzer is the sentinel error wrapped by InvalidAnalyzerError.
var ErrInvalidAnalyzer = errors.New("invalid analyzer")

type (
	// AnalyzerRef names the output analyzer that turns a job's output into a report.
	AnalyzerRef string

	// InvalidAnalyzerError is returned when an AnalyzerRef is not one of the known analyzers.
	InvalidAnalyzerError struct {
		Value AnalyzerRef
	}
)

// Analyzers returns every known analyzer, default first.
func Analyzers() []AnalyzerRef {
	return []AnalyzerRef{
		AnalyzerStandard,
		AnalyzerNextest,
		AnalyzerGoTest,
		AnalyzerEslint,
		AnalyzerPytest,
		AnalyzerCargoJSON,
	}
}

// String returns the string representation of the AnalyzerRef.
func (a AnalyzerRef) String() string { return string(a) }

// Validate returns nil if a names a known analyzer.
func (a AnalyzerRef) Validate() error {
	switch a {
	case AnalyzerStandard, AnalyzerNextest, AnalyzerGoTest, AnalyzerEslint, AnalyzerPytest, AnalyzerCargoJSON:
		return nil
	default:
		return &InvalidAnalyzerError{Value: a}
	}
}

// Error implements the error interface.
func (e *InvalidAnalyzerError) Error() string {
	return fmt.Sprintf("invalid analyzer %q (valid: %v)", e.Value, Analyzers())
}

// Unwrap returns ErrInvalidAnalyzer for errors.Is() compatibility.
func (e *InvalidAnalyzerError) Unwrap() error { return ErrInvalidAnalyzer }
