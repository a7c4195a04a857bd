// SPDX-License-Identifier: MPL-2.0

package ignore

import (
	"fmt"
	"strings"
)

type (
	// Predicate answers whether a path is excluded from change detection.
	// Paths are absolute; implementations must not panic on paths outside
	// their root and simply report them as not excluded.
	Predicate interface {
		Excludes(path string) bool
	}

	// Set is an ordered collection of predicates combined with a logical OR.
	// The zero value is an empty set that excludes nothing.
	Set struct {
		predicates []Predicate
	}
)

// NewSet returns a set holding the given predicates.
func NewSet(predicates ...Predicate) *Set {
	s := &Set{}
	for _, p := range predicates {
		s.Add(p)
	}
	return s
}

// Add appends a predicate. Nil predicates are dropped.
func (s *Set) Add(p Predicate) {
	if p == nil {
		return
	}
	s.predicates = append(s.predicates, p)
}

// Len returns the number of predicates in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.predicates)
}

// Excludes reports whether any predicate excludes path.
func (s *Set) Excludes(path string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.predicates {
		if p.Excludes(path) {
			return true
		}
	}
	return false
}

// String lists the predicates, for dry-run output and debug logs.
func (s *Set) String() string {
	if s.Len() == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(s.predicates))
	for _, p := range s.predicates {
		if str, ok := p.(fmt.Stringer); ok {
			parts = append(parts, str.String())
		} else {
			parts = append(parts, fmt.Sprintf("%T", p))
		}
	}
	return strings.Join(parts, " | ")
}
