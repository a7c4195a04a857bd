// SPDX-License-Identifier: MPL-2.0

// Package location finds the package and workspace a bacon run applies to,
// and turns a job of the settings into a mission rooted there.
package location

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/kpbaks/bacon/internal/config"
	"github.com/kpbaks/bacon/internal/mission"
	"github.com/kpbaks/bacon/pkg/jobspec"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// CargoManifest is the file marking a Rust package.
const CargoManifest = "Cargo.toml"

var (
	// ErrPathNotFound is returned when the start path does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrUnknownJob is the sentinel error wrapped by UnknownJobError.
	ErrUnknownJob = errors.New("unknown job")

	defaultWatched = []string{"src", "tests", "benches", "examples", "build.rs", CargoManifest}
)

type (
	// Location is where a mission runs.
	Location struct {
		// ExecutionDir is the directory the user pointed at.
		ExecutionDir string
		// PackageDir is the nearest ancestor of ExecutionDir holding a
		// Cargo.toml or a bacon settings file, or ExecutionDir itself.
		PackageDir string
		// WorkspaceDir is the nearest Cargo workspace root, or "".
		WorkspaceDir string
		// Name is the Cargo package name, or the package directory's base name.
		Name string
		// HasManifest is false when PackageDir fell back to ExecutionDir.
		HasManifest bool
	}

	// UnknownJobError is returned when a job name is not in the settings.
	UnknownJobError struct {
		Name  jobspec.JobName
		Known []jobspec.JobName
	}

	cargoManifest struct {
		Package *struct {
			Name string `toml:"name"`
		} `toml:"package"`
		Workspace map[string]any `toml:"workspace"`
	}
)

// Error implements the error interface.
func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("unknown job %q (known jobs: %v)", e.Name, e.Known)
}

// Unwrap returns ErrUnknownJob for errors.Is() compatibility.
func (e *UnknownJobError) Unwrap() error { return ErrUnknownJob }

// Find resolves the Location of start, a directory or a file in it.
func Find(start string) (*Location, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", start, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, abs)
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	loc := &Location{ExecutionDir: abs, PackageDir: abs}
	for dir := range ancestors(abs) {
		if fileExists(filepath.Join(dir, CargoManifest)) || config.PackageFile(dir) != "" {
			loc.PackageDir = dir
			loc.HasManifest = true
			break
		}
	}

	loc.Name = filepath.Base(loc.PackageDir)
	manifest, err := readManifest(filepath.Join(loc.PackageDir, CargoManifest))
	if err != nil {
		return nil, err
	}
	if manifest != nil && manifest.Package != nil && manifest.Package.Name != "" {
		loc.Name = manifest.Package.Name
	}

	for dir := range ancestors(loc.PackageDir) {
		m, err := readManifest(filepath.Join(dir, CargoManifest))
		if err != nil {
			return nil, err
		}
		if m != nil && m.Workspace != nil {
			loc.WorkspaceDir = dir
			break
		}
	}
	return loc, nil
}

// PathsToWatch returns the absolute paths a job watches: its own watch list,
// plus the default Cargo paths unless the job opts out. Only existing paths
// are kept, without duplicates.
func (l *Location) PathsToWatch(job *jobspec.Job) []string {
	var candidates []string
	for _, p := range job.Watch {
		candidates = append(candidates, mission.ResolvePath(p, l.PackageDir, l.WorkspaceDir))
	}
	if job.GetDefaultWatch() {
		for _, p := range defaultWatched {
			candidates = append(candidates, filepath.Join(l.PackageDir, p))
		}
	}

	paths := make([]string, 0, len(candidates))
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// Mission builds the mission for ref. An empty ref name selects the settings'
// default job.
func (l *Location) Mission(ref jobspec.ConcreteJobRef, settings *jobspec.Settings, logger *log.Logger) (*mission.Mission, error) {
	if ref.Name == "" {
		ref.Name = settings.DefaultJob
	}
	job, ok := settings.Job(ref.Name)
	if !ok {
		return nil, &UnknownJobError{Name: ref.Name, Known: settings.JobNames()}
	}
	return &mission.Mission{
		LocationName:       l.Name,
		JobRef:             ref,
		Job:                job,
		Settings:           settings,
		ExecutionDirectory: l.ExecutionDir,
		PackageDirectory:   l.PackageDir,
		WorkspaceDirectory: l.WorkspaceDir,
		PathsToWatch:       l.PathsToWatch(&job),
		Logger:             logger,
	}, nil
}

// readManifest returns nil without error when path does not exist.
func readManifest(path string) (*cargoManifest, error) {
	if !fileExists(path) {
		return nil, nil
	}
	var m cargoManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
