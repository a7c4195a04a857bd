// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionable(t *testing.T) {
	t.Parallel()

	if err := Actionable("resolve job", nil, Hint("unused")); err != nil {
		t.Errorf("Actionable(nil) = %v, want nil", err)
	}

	cause := errors.New("unexpected token")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"operation only", Actionable("start watcher", cause), "cannot start watcher: unexpected token"},
		{"with path", Actionable("load settings file", cause, In("bacon.cue")), "cannot load settings file (bacon.cue): unexpected token"},
		{"bare struct", &ActionableError{Op: "resolve job"}, "cannot resolve job"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := Actionable("watch sources", fmt.Errorf("inner: %w", sentinel))
	if !errors.Is(err, sentinel) {
		t.Fatalf("errors.Is(%v, sentinel) = false", err)
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Op != "watch sources" {
		t.Errorf("errors.As() = %+v", ae)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("no such file")
	err := Actionable("load settings file", fmt.Errorf("open: %w", inner),
		In("bacon.toml"),
		Hint("Check the path"),
		Hint("Run '%s'", "bacon jobs"))
	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("%T is not actionable", err)
	}

	short := ae.Format(false)
	want := "cannot load settings file (bacon.toml): open: no such file\n  hint: Check the path\n  hint: Run 'bacon jobs'"
	if short != want {
		t.Errorf("Format(false) =\n%s\nwant\n%s", short, want)
	}

	long := ae.Format(true)
	if !strings.HasSuffix(long, "\n  caused by: no such file") {
		t.Errorf("Format(true) misses the chain:\n%s", long)
	}
}
