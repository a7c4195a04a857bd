// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError records what bacon was doing when Err happened and
	// how the user can fix it.
	//
	//	return issue.Actionable("load settings file", err,
	//		issue.In(path),
	//		issue.Hint("Check the file syntax and field names"))
	ActionableError struct {
		// Op is a verb phrase: "load settings file", "start watcher".
		Op string
		// Path is the file or directory involved, if any.
		Path  string
		Hints []string
		Err   error
	}

	// Option decorates an ActionableError.
	Option func(*ActionableError)
)

// Actionable wraps err. A nil err yields a nil error.
func Actionable(op string, err error, opts ...Option) error {
	if err == nil {
		return nil
	}
	ae := &ActionableError{Op: op, Err: err}
	for _, opt := range opts {
		opt(ae)
	}
	return ae
}

// In names the file or directory the operation was working on.
func In(path string) Option {
	return func(ae *ActionableError) { ae.Path = path }
}

// Hint adds a fix suggestion.
func Hint(format string, args ...any) Option {
	return func(ae *ActionableError) { ae.Hints = append(ae.Hints, fmt.Sprintf(format, args...)) }
}

func (e *ActionableError) Error() string {
	msg := "cannot " + e.Op
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ActionableError) Unwrap() error { return e.Err }

// Format renders the message followed by one "hint:" line per hint. With
// verbose set, every error below Err in the chain gets a "caused by:" line.
func (e *ActionableError) Format(verbose bool) string {
	lines := []string{e.Error()}
	for _, h := range e.Hints {
		lines = append(lines, "  hint: "+h)
	}
	if verbose && e.Err != nil {
		for err := errors.Unwrap(e.Err); err != nil; err = errors.Unwrap(err) {
			lines = append(lines, "  caused by: "+err.Error())
		}
	}
	return strings.Join(lines, "\n")
}
