// SPDX-License-Identifier: MPL-2.0

package jobspec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidJobName is the sentinel error wrapped by InvalidJobNameError.
var ErrInvalidJobName = errors.New("invalid job name")

type (
	// JobName identifies a job in the settings' job table.
	// A valid name is non-empty and contains no whitespace or ':' (the scope separator).
	JobName string

	// InvalidJobNameError is returned when a JobName fails validation.
	InvalidJobNameError struct {
		Value JobName
	}
)

// String returns the string representation of the JobName.
func (n JobName) String() string { return string(n) }

// Validate returns nil if the name is usable as a job key.
func (n JobName) Validate() error {
	s := string(n)
	if strings.TrimSpace(s) == "" || strings.ContainsAny(s, " \t\n:") {
		return &InvalidJobNameError{Value: n}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidJobNameError) Error() string {
	return fmt.Sprintf("invalid job name %q: must be non-empty without whitespace or ':'", e.Value)
}

// Unwrap returns ErrInvalidJobName for errors.Is() compatibility.
func (e *InvalidJobNameError) Unwrap() error { return ErrInvalidJobName }
