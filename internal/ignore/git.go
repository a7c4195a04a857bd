// SPDX-License-Identifier: MPL-2.0

package ignore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ErrNotInRepository is returned by NewGitPredicate when dir is not inside a git work tree.
var ErrNotInRepository = errors.New("not inside a git repository")

// GitPredicate excludes the paths git ignores in the repository enclosing its
// root: every .gitignore of the work tree, .git/info/exclude, and the user's
// global excludes file. The .git directory itself is always excluded.
type GitPredicate struct {
	repoRoot string
	matcher  gitignore.Matcher
}

// NewGitPredicate detects the repository containing dir and loads its ignore rules.
func NewGitPredicate(dir string) (*GitPredicate, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotInRepository, dir)
		}
		return nil, fmt.Errorf("open repository at %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open work tree at %s: %w", dir, err)
	}

	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		return nil, fmt.Errorf("read gitignore patterns: %w", err)
	}
	// Global excludes are optional: a missing or unreadable ~/.gitconfig only
	// means there is nothing more to add.
	if global, globalErr := gitignore.LoadGlobalPatterns(osfs.New("/")); globalErr == nil {
		patterns = append(global, patterns...)
	}

	return &GitPredicate{
		repoRoot: wt.Filesystem.Root(),
		matcher:  gitignore.NewMatcher(patterns),
	}, nil
}

// Root returns the work tree root the rules are relative to.
func (g *GitPredicate) Root() string { return g.repoRoot }

// Excludes reports whether git ignores path.
func (g *GitPredicate) Excludes(path string) bool {
	rel, ok := relativeTo(g.repoRoot, path)
	if !ok {
		return false
	}
	parts := strings.Split(rel, "/")
	if parts[0] == ".git" {
		return true
	}
	return g.matcher.Match(parts, isDir(path))
}

// String implements fmt.Stringer.
func (g *GitPredicate) String() string {
	return "gitignore(" + g.repoRoot + ")"
}

// relativeTo returns path relative to root with forward slashes. ok is false
// when path is root itself or lies outside root.
func relativeTo(root, path string) (string, bool) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
