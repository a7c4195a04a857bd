// SPDX-License-Identifier: MPL-2.0

package jobspec

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidLinePattern is the sentinel error wrapped by InvalidLinePatternError.
var ErrInvalidLinePattern = errors.New("invalid line pattern")

type (
	// LinePattern is a regular expression selecting output lines that the
	// reporting layer should drop before analysis.
	LinePattern string

	// InvalidLinePatternError is returned when a LinePattern does not compile.
	InvalidLinePatternError struct {
		Value  LinePattern
		Reason string
	}
)

// String returns the string representation of the LinePattern.
func (p LinePattern) String() string { return string(p) }

// Validate returns nil if the pattern is a non-empty, compilable regular expression.
func (p LinePattern) Validate() error {
	if p == "" {
		return &InvalidLinePatternError{Value: p, Reason: "empty pattern"}
	}
	if _, err := regexp.Compile(string(p)); err != nil {
		return &InvalidLinePatternError{Value: p, Reason: err.Error()}
	}
	return nil
}

// Compile returns the compiled regular expression.
func (p LinePattern) Compile() (*regexp.Regexp, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return regexp.MustCompile(string(p)), nil
}

// Error implements the error interface.
func (e *InvalidLinePatternError) Error() string {
	return fmt.Sprintf("invalid line pattern %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidLinePattern for errors.Is() compatibility.
func (e *InvalidLinePatternError) Unwrap() error { return ErrInvalidLinePattern }
