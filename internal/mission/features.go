// SPDX-License-Identifier: MPL-2.0

package mission

import (
	"maps"
	"slices"
	"strings"
)

// MergeFeatures returns the union of two comma-separated feature lists.
// Duplicates and empty names are dropped and the result is sorted, so the
// merge is commutative and stable across runs. Input order is not kept.
func MergeFeatures(a, b string) string {
	set := make(map[string]struct{})
	for _, list := range []string{a, b} {
		for f := range strings.SplitSeq(list, ",") {
			if f = strings.TrimSpace(f); f != "" {
				set[f] = struct{}{}
			}
		}
	}
	return strings.Join(slices.Sorted(maps.Keys(set)), ",")
}
