// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kpbaks/bacon/internal/issue"
	"github.com/kpbaks/bacon/internal/testutil"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{Stdout: &stdout, Stderr: &stderr})
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// newPackage creates a Cargo package with a src dir and the given bacon.toml.
func newPackage(t *testing.T, baconToml string) string {
	t.Helper()
	dir := testutil.NewTree(t, `
-- Cargo.toml --
[package]
name = "demo"
-- src/main.rs --
fn main() {}
`)
	if baconToml != "" {
		testutil.WriteTree(t, dir, "-- bacon.toml --\n"+baconToml)
	}
	return dir
}

func TestResolve_DefaultJob(t *testing.T) {
	t.Parallel()

	dir := newPackage(t, "")
	out, _, err := execute(t, "resolve", "--no-prefs", "--path", dir)
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}
	for _, want := range []string{"demo", "check", "cargo check --color always", dir, filepath.Join(dir, "src")} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestResolve_FeaturesAndScope(t *testing.T) {
	t.Parallel()

	dir := newPackage(t, `
[jobs.test]
command = ["cargo", "test", "--features", "serde", "--", "--nocapture"]
need_stdout = true
`)
	out, _, err := execute(t, "resolve", "test:parse,lex", "--no-prefs", "--path", dir,
		"--features", "cli", "--job-arg", "--offline")
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}
	want := "cargo test --features cli,serde -- --nocapture parse --offline"
	if !strings.Contains(out, want) {
		t.Errorf("output misses %q:\n%s", want, out)
	}
	if !strings.Contains(out, "test parse lex") {
		t.Errorf("badge missing:\n%s", out)
	}
}

func TestResolve_UnknownJob(t *testing.T) {
	t.Parallel()

	dir := newPackage(t, "")
	_, _, err := execute(t, "resolve", "bench", "--no-prefs", "--path", dir)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitUsage {
		t.Fatalf("error = %v, want ExitError(%d)", err, ExitUsage)
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.JobNotFoundId {
		t.Errorf("error should carry the job-not-found issue, got %v", err)
	}
}

func TestResolve_EmptyCommand(t *testing.T) {
	t.Parallel()

	dir := newPackage(t, "[jobs.empty]\ncommand = []\n")
	_, _, err := execute(t, "resolve", "empty", "--no-prefs", "--path", dir)
	var exitErr *ExitError
	if err == nil || !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want ExitError", err)
	}
	if exitErr.Code != ExitConfig {
		t.Errorf("exit code = %d, want %d", exitErr.Code, ExitConfig)
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.EmptyCommandId {
		t.Errorf("error should carry the empty-command issue, got %v", err)
	}
}

func TestResolve_BadSettings(t *testing.T) {
	t.Parallel()

	dir := newPackage(t, "[jobs.check]\nanalyzer = \"rustc\"\n")
	_, _, err := execute(t, "resolve", "--no-prefs", "--path", dir)
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.JobFileParseErrorId {
		t.Errorf("error = %v, want a job-file parse issue", err)
	}
}

func TestJobs(t *testing.T) {
	t.Parallel()

	dir := newPackage(t, "default_job = \"lint\"\n[jobs.lint]\ncommand_line = \"cargo clippy -- -D warnings\"\n")
	out, _, err := execute(t, "jobs", "--no-prefs", "--path", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "* lint") || !strings.Contains(out, "cargo clippy -- -D warnings") {
		t.Errorf("jobs output:\n%s", out)
	}
	if !strings.Contains(out, "  check") {
		t.Errorf("default jobs missing:\n%s", out)
	}
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	dir := newPackage(t, "features = \"x\"\n")
	out, _, err := execute(t, "config", "show", "--no-prefs", "--path", dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# from " + filepath.Join(dir, "bacon.toml"), `features = "x"`, "[jobs.check]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

// startWatch runs "bacon watch" on dir until the test ends. The returned
// function blocks until the output satisfies cond.
func startWatch(t *testing.T, dir string) (*syncBuffer, func(cond func(string) bool, what string)) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	app := NewApp(Dependencies{Stdout: stdout, Stderr: stderr})
	root := NewRootCommand(app)
	root.SetArgs([]string{"watch", "--no-prefs", "--path", dir, "--debounce", "50ms"})

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watch error = %v", err)
		}
	})

	waitFor := func(cond func(string) bool, what string) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for !cond(stdout.String()) {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %s, output:\n%s\nstderr:\n%s", what, stdout.String(), stderr.String())
			}
			time.Sleep(20 * time.Millisecond)
		}
	}
	return stdout, waitFor
}

func TestWatch_ReresolvesOnChange(t *testing.T) {
	t.Parallel()

	dir := newPackage(t, "")
	stdout, waitFor := startWatch(t, dir)

	waitFor(func(out string) bool { return strings.Contains(out, "watching") }, "the watcher")
	if n := strings.Count(stdout.String(), "cargo check"); n != 1 {
		t.Fatalf("initial resolutions = %d, want 1", n)
	}
	if err := os.WriteFile(filepath.Join(dir, "src", "lib.rs"), []byte("pub fn f() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(func(out string) bool { return strings.Count(out, "cargo check") >= 2 }, "a second resolution")
}

func TestWatch_SettingsChangeRebuildsWatchPaths(t *testing.T) {
	t.Parallel()

	dir := newPackage(t, "[jobs.check]\ncommand = [\"cargo\", \"check\"]\n")
	testutil.MustMkdirAll(t, filepath.Join(dir, "assets"))
	_, waitFor := startWatch(t, dir)
	waitFor(func(out string) bool { return strings.Contains(out, "watching") }, "the watcher")

	testutil.WriteTree(t, dir, `
-- bacon.toml --
[jobs.check]
command = ["cargo", "check", "--tests"]
default_watch = false
watch = ["assets"]
`)
	waitFor(func(out string) bool {
		return strings.Count(out, "watching") >= 2 && strings.Contains(out, "cargo check --tests")
	}, "the restarted watcher")

	testutil.WriteTree(t, dir, "-- assets/site.css --\nbody {}\n")
	waitFor(func(out string) bool { return strings.Count(out, "cargo check --tests") >= 2 }, "a change under the new watch path")
}

func TestExitError(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	e := exitWith(ExitConfig, inner)
	if e.Error() != "boom" || !errors.Is(e, inner) {
		t.Errorf("ExitError = %v", e)
	}
	if (&ExitError{Code: ExitUsage}).Error() != "bacon exited with code 2" {
		t.Error("ExitError without Err should print the status")
	}
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderServiceError(&buf, newServiceError(errors.New("x"), issue.JobNotFoundId))
	if !strings.Contains(buf.String(), "Job not found") {
		t.Errorf("rendered:\n%s", buf.String())
	}

	buf.Reset()
	renderServiceError(&buf, newServiceError(errors.New("x"), 0))
	if buf.Len() != 0 {
		t.Errorf("no issue should render nothing, got %q", buf.String())
	}
}
