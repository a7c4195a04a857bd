// SPDX-License-Identifier: MPL-2.0

package jobspec

import "strings"

type (
	// Scope restricts a job run to some of its tests.
	Scope struct {
		Tests []string
	}

	// ConcreteJobRef names a job and optionally narrows it to a scope.
	ConcreteJobRef struct {
		Name  JobName
		Scope Scope
	}
)

// HasTests reports whether the scope designates specific tests.
func (s Scope) HasTests() bool { return len(s.Tests) > 0 }

// ParseConcreteJobRef parses "name" or "name:test1,test2".
// Empty test names are dropped, so "test:" is an unscoped reference.
func ParseConcreteJobRef(s string) (ConcreteJobRef, error) {
	name, tests, _ := strings.Cut(s, ":")
	ref := ConcreteJobRef{Name: JobName(strings.TrimSpace(name))}
	if err := ref.Name.Validate(); err != nil {
		return ConcreteJobRef{}, err
	}
	for t := range strings.SplitSeq(tests, ",") {
		if t = strings.TrimSpace(t); t != "" {
			ref.Scope.Tests = append(ref.Scope.Tests, t)
		}
	}
	return ref, nil
}

// BadgeLabel is the short label shown for the job, e.g. "test" or "test foo bar".
func (r ConcreteJobRef) BadgeLabel() string {
	if !r.Scope.HasTests() {
		return r.Name.String()
	}
	return r.Name.String() + " " + strings.Join(r.Scope.Tests, " ")
}

// String returns the reference in the form accepted by ParseConcreteJobRef.
func (r ConcreteJobRef) String() string {
	if !r.Scope.HasTests() {
		return r.Name.String()
	}
	return r.Name.String() + ":" + strings.Join(r.Scope.Tests, ",")
}
