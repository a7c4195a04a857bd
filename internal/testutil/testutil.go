// SPDX-License-Identifier: MPL-2.0

// Package testutil builds on-disk fixtures for tests: file trees described as
// txtar archives, and git repositories around them.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/rogpeppe/go-internal/txtar"
)

// WriteTree writes every file of the txtar archive under dir and returns dir.
//
//	testutil.WriteTree(t, t.TempDir(), `
//	-- Cargo.toml --
//	[package]
//	name = "demo"
//	-- src/main.rs --
//	fn main() {}
//	`)
func WriteTree(t testing.TB, dir, archive string) string {
	t.Helper()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		MustMkdirAll(t, filepath.Dir(path))
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}

// NewTree writes archive into a fresh temporary directory.
func NewTree(t testing.TB, archive string) string {
	t.Helper()
	return WriteTree(t, t.TempDir(), archive)
}

// NewRepo is NewTree inside a freshly initialised git repository.
func NewRepo(t testing.TB, archive string) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("git init %s: %v", dir, err)
	}
	return WriteTree(t, dir, archive)
}

// MustMkdirAll creates a directory along with any necessary parents.
func MustMkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}
