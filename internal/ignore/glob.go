// SPDX-License-Identifier: MPL-2.0

package ignore

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidPattern is returned by GlobPredicate.Add for malformed patterns.
var ErrInvalidPattern = errors.New("invalid ignore pattern")

type (
	// GlobPredicate excludes paths matching doublestar patterns.
	//
	// Relative patterns are matched against the path relative to the root
	// they were registered with; absolute patterns against the absolute path.
	// A pattern also excludes everything below a directory it matches, and a
	// trailing slash ("target/") is accepted as a directory marker.
	GlobPredicate struct {
		rules []globRule
	}

	globRule struct {
		root    string // empty for absolute patterns
		pattern string
	}
)

// Add registers pattern against root. A malformed pattern is rejected and
// leaves the predicate unchanged.
func (g *GlobPredicate) Add(pattern, root string) error {
	p := strings.TrimSpace(pattern)
	if p == "" {
		return fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	p = filepath.ToSlash(p)
	rule := globRule{root: root}
	if filepath.IsAbs(pattern) {
		rule.root = ""
	} else {
		p = strings.TrimPrefix(p, "./")
	}
	p = strings.TrimSuffix(p, "/")
	if p == "" || !doublestar.ValidatePattern(p) {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	rule.pattern = p
	g.rules = append(g.rules, rule)
	return nil
}

// Len returns the number of registered patterns.
func (g *GlobPredicate) Len() int { return len(g.rules) }

// Excludes reports whether any registered pattern matches path or one of its parents.
func (g *GlobPredicate) Excludes(path string) bool {
	for _, r := range g.rules {
		var subject string
		if r.root == "" {
			subject = filepath.ToSlash(path)
		} else {
			rel, ok := relativeTo(r.root, path)
			if !ok {
				continue
			}
			subject = rel
		}
		if matchOrBelow(r.pattern, subject) {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (g *GlobPredicate) String() string {
	patterns := make([]string, len(g.rules))
	for i, r := range g.rules {
		patterns[i] = r.pattern
	}
	return "glob(" + strings.Join(patterns, ", ") + ")"
}

func matchOrBelow(pattern, subject string) bool {
	if ok, err := doublestar.Match(pattern, subject); err == nil && ok {
		return true
	}
	ok, err := doublestar.Match(pattern+"/**", subject)
	return err == nil && ok
}
