// SPDX-License-Identifier: MPL-2.0

package jobspec

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ActionBack returns to the previous job.
	ActionBack Action = "back"
	// ActionRerun runs the current job again.
	ActionRerun Action = "rerun"
	// ActionRefresh clears the output and reruns the current job.
	ActionRefresh Action = "refresh"
	// ActionQuit stops bacon.
	ActionQuit Action = "quit"

	jobActionPrefix = "job:"
)

// ErrInvalidAction is the sentinel error wrapped by InvalidActionError.
var ErrInvalidAction = errors.New("invalid action")

type (
	// Action is what bacon does after a run, e.g. "back" or "job:test".
	Action string

	// InvalidActionError is returned when an Action is neither a known
	// internal action nor a valid "job:" reference.
	InvalidActionError struct {
		Value Action
		Err   error
	}
)

func (a Action) String() string { return string(a) }

// JobRef returns the job an "job:<ref>" action switches to.
func (a Action) JobRef() (ConcreteJobRef, bool) {
	ref, ok := strings.CutPrefix(string(a), jobActionPrefix)
	if !ok {
		return ConcreteJobRef{}, false
	}
	parsed, err := ParseConcreteJobRef(ref)
	if err != nil {
		return ConcreteJobRef{}, false
	}
	return parsed, true
}

// Validate returns nil for the internal actions and for well-formed job
// references.
func (a Action) Validate() error {
	switch a {
	case ActionBack, ActionRerun, ActionRefresh, ActionQuit:
		return nil
	}
	ref, ok := strings.CutPrefix(string(a), jobActionPrefix)
	if !ok {
		return &InvalidActionError{Value: a}
	}
	if _, err := ParseConcreteJobRef(ref); err != nil {
		return &InvalidActionError{Value: a, Err: err}
	}
	return nil
}

func (e *InvalidActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid action %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid action %q (valid: back, rerun, refresh, quit, job:<name>)", e.Value)
}

// Unwrap returns ErrInvalidAction for errors.Is() compatibility.
func (e *InvalidActionError) Unwrap() error { return ErrInvalidAction }
