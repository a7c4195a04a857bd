// SPDX-License-Identifier: MPL-2.0

// Package report holds the outcome of one job run as counted by an output
// analyzer, and decides whether that outcome is a success.
package report

import "fmt"

type (
	// Stats counts the items an analyzer found in a job's output.
	Stats struct {
		Errors    int
		TestFails int
		Warnings  int
		Passed    int
	}

	// Report is the analyzed result of a job run.
	Report struct {
		Stats Stats
		// Cancelled is set when the run was killed before completion.
		Cancelled bool
	}
)

// IsSuccess reports whether the run counts as a success. Errors and cancelled
// runs always fail; test failures fail unless allowFailures; warnings fail
// unless allowWarnings.
func (r *Report) IsSuccess(allowWarnings, allowFailures bool) bool {
	if r == nil || r.Cancelled || r.Stats.Errors > 0 {
		return false
	}
	if r.Stats.TestFails > 0 && !allowFailures {
		return false
	}
	if r.Stats.Warnings > 0 && !allowWarnings {
		return false
	}
	return true
}

// String summarises the counts, e.g. "2 errors, 1 warning".
func (s Stats) String() string {
	return fmt.Sprintf("%s, %s, %s, %s",
		plural(s.Errors, "error"), plural(s.TestFails, "test failure"),
		plural(s.Warnings, "warning"), plural(s.Passed, "passed test"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
