// SPDX-License-Identifier: MPL-2.0

package jobspec

import (
	"errors"
	"slices"
	"testing"
)

func TestParseConcreteJobRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantName  JobName
		wantTests []string
		wantErr   bool
	}{
		{"bare name", "check", "check", nil, false},
		{"single test", "test:parse_ok", "test", []string{"parse_ok"}, false},
		{"several tests", "test:a,b", "test", []string{"a", "b"}, false},
		{"empty scope", "test:", "test", nil, false},
		{"blank names dropped", "test: a , ,b", "test", []string{"a", "b"}, false},
		{"empty name", ":a", "", nil, true},
		{"whitespace name", "my job", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ref, err := ParseConcreteJobRef(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidJobName) {
					t.Fatalf("ParseConcreteJobRef(%q) error = %v, want ErrInvalidJobName", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseConcreteJobRef(%q) unexpected error: %v", tt.input, err)
			}
			if ref.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", ref.Name, tt.wantName)
			}
			if !slices.Equal(ref.Scope.Tests, tt.wantTests) {
				t.Errorf("Scope.Tests = %v, want %v", ref.Scope.Tests, tt.wantTests)
			}
			if ref.Scope.HasTests() != (len(tt.wantTests) > 0) {
				t.Errorf("HasTests() = %v with tests %v", ref.Scope.HasTests(), ref.Scope.Tests)
			}
		})
	}
}

func TestConcreteJobRef_Labels(t *testing.T) {
	t.Parallel()

	plain := ConcreteJobRef{Name: "clippy"}
	if got := plain.BadgeLabel(); got != "clippy" {
		t.Errorf("BadgeLabel() = %q, want %q", got, "clippy")
	}

	scoped := ConcreteJobRef{Name: "test", Scope: Scope{Tests: []string{"a", "b"}}}
	if got := scoped.BadgeLabel(); got != "test a b" {
		t.Errorf("BadgeLabel() = %q, want %q", got, "test a b")
	}
	if got := scoped.String(); got != "test:a,b" {
		t.Errorf("String() = %q, want %q", got, "test:a,b")
	}

	roundTrip, err := ParseConcreteJobRef(scoped.String())
	if err != nil {
		t.Fatalf("ParseConcreteJobRef() error: %v", err)
	}
	if !slices.Equal(roundTrip.Scope.Tests, scoped.Scope.Tests) {
		t.Errorf("round trip tests = %v, want %v", roundTrip.Scope.Tests, scoped.Scope.Tests)
	}
}
