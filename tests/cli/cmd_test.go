// SPDX-License-Identifier: MPL-2.0

// Package cli runs the bacon binary against testscript scenarios.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var baconBin string

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	root, err := moduleRoot()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	binDir, err := os.MkdirTemp("", "bacon-cli-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer os.RemoveAll(binDir)

	baconBin = filepath.Join(binDir, "bacon")
	if runtime.GOOS == "windows" {
		baconBin += ".exe"
	}
	build := exec.CommandContext(context.Background(), "go", "build", "-o", baconBin, ".")
	build.Dir = root
	build.Stdout, build.Stderr = os.Stdout, os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "build bacon:", err)
		return 1
	}
	return m.Run()
}

// moduleRoot walks up from the working directory to the go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("no go.mod above the test directory")
		}
		dir = parent
	}
}

func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("PATH", filepath.Dir(baconBin)+string(os.PathListSeparator)+env.Getenv("PATH"))
			// No user preferences leak into scripts.
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"cargo-package": cargoPackage,
		},
		ContinueOnError: true,
	})
}

// cargoPackage implements "cargo-package dir name": a minimal Cargo package
// with a manifest and src/main.rs.
func cargoPackage(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! cargo-package")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: cargo-package dir name")
	}
	dir := ts.MkAbs(args[0])
	ts.Check(os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	manifest := fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\n", args[1])
	ts.Check(os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(manifest), 0o644))
	ts.Check(os.WriteFile(filepath.Join(dir, "src", "main.rs"), []byte("fn main() {}\n"), 0o644))
}
