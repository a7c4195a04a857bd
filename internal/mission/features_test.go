// SPDX-License-Identifier: MPL-2.0

package mission

import (
	"slices"
	"strings"
	"testing"
)

func TestMergeFeatures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"disjoint", "serde,json", "tokio", "json,serde,tokio"},
		{"overlap", "a,b", "b,c", "a,b,c"},
		{"same", "x,x,y", "x,x,y", "x,y"},
		{"empty side", "", "a", "a"},
		{"stray commas", "a,,b,", ",c", "a,b,c"},
		{"both empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MergeFeatures(tt.a, tt.b); got != tt.want {
				t.Errorf("MergeFeatures(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMergeFeatures_Properties(t *testing.T) {
	t.Parallel()

	lists := []string{"a", "b,a", "c,d,e", "e,e,a", "z,y,x,w", ""}
	for _, a := range lists {
		for _, b := range lists {
			ab := MergeFeatures(a, b)
			if ba := MergeFeatures(b, a); ab != ba {
				t.Errorf("not commutative: merge(%q,%q)=%q, merge(%q,%q)=%q", a, b, ab, b, a, ba)
			}

			got := strings.Split(ab, ",")
			for _, f := range strings.Split(a+","+b, ",") {
				if f == "" {
					continue
				}
				if n := countOf(got, f); n != 1 {
					t.Errorf("merge(%q,%q)=%q has %q %d times, want once", a, b, ab, f, n)
				}
			}
		}

		// merge(a, a) is a deduplicated a.
		aa := MergeFeatures(a, a)
		if aa != MergeFeatures(a, "") {
			t.Errorf("merge(%q,%q)=%q, want dedup(%q)=%q", a, a, aa, a, MergeFeatures(a, ""))
		}
		if MergeFeatures(aa, aa) != aa {
			t.Errorf("merge is not idempotent on %q", aa)
		}
	}
}

func countOf(list []string, s string) int {
	return len(slices.DeleteFunc(slices.Clone(list), func(x string) bool { return x != s }))
}
