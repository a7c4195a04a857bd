// SPDX-License-Identifier: MPL-2.0

package mission

import (
	"slices"

	"github.com/kpbaks/bacon/pkg/jobspec"
)

// appendScope adds the scoped test names to tokens. Commands starting with one
// of singleTest accept a single test filter, so only the first name is added
// for them.
func appendScope(tokens []string, scope jobspec.Scope, singleTest [][]string) []string {
	if !scope.HasTests() || len(tokens) < 2 {
		return tokens
	}
	tests := scope.Tests
	for _, prefix := range singleTest {
		if len(prefix) > 0 && len(tokens) >= len(prefix) && slices.Equal(tokens[:len(prefix)], prefix) {
			tests = tests[:1]
			break
		}
	}
	return append(tokens, tests...)
}
