// SPDX-License-Identifier: MPL-2.0

package mission

import (
	"os"
	"slices"

	"github.com/kpbaks/bacon/internal/ignore"
	"github.com/kpbaks/bacon/internal/report"
	"github.com/kpbaks/bacon/internal/sound"
	"github.com/kpbaks/bacon/pkg/jobspec"

	"github.com/charmbracelet/log"
)

// Mission binds a job to the settings and directories of one resolution cycle.
// It borrows Settings and Job and must not modify them.
type Mission struct {
	// LocationName is a display name for the package, usually its directory name.
	LocationName string
	JobRef       jobspec.ConcreteJobRef
	Job          jobspec.Job
	Settings     *jobspec.Settings

	// ExecutionDirectory is where the command runs.
	ExecutionDirectory string
	// PackageDirectory roots ignore patterns and relative paths.
	PackageDirectory string
	// WorkspaceDirectory is empty when the package is not part of a workspace.
	WorkspaceDirectory string

	PathsToWatch []string

	// Logger receives degraded-mode warnings. Nil means log.Default().
	Logger *log.Logger
	// LookupEnv resolves $NAME tokens. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// NewSoundPlayer builds the sound backend. Nil means sound.New.
	NewSoundPlayer sound.Constructor
}

// IgnoreSet builds the predicates deciding which changed paths are ignored.
func (m *Mission) IgnoreSet() *ignore.Set {
	set := ignore.NewSet()
	if m.Job.GetApplyGitignore() {
		gp, err := ignore.NewGitPredicate(m.PackageDirectory)
		if err != nil {
			// Expected outside a repository.
			m.logger().Debug("git ignore rules unavailable", "dir", m.PackageDirectory, "err", err)
		} else {
			set.Add(gp)
		}
	}
	if len(m.Job.Ignore) > 0 {
		glob := &ignore.GlobPredicate{}
		for _, pattern := range m.Job.Ignore {
			if err := glob.Add(pattern, m.PackageDirectory); err != nil {
				m.logger().Warn("skipping ignore pattern", "pattern", pattern, "err", err)
			}
		}
		if glob.Len() > 0 {
			set.Add(glob)
		}
	}
	return set
}

// IsSuccess applies the job's tolerance for warnings and failures to r.
func (m *Mission) IsSuccess(r *report.Report) bool {
	return r.IsSuccess(m.Job.AllowWarnings, m.Job.AllowFailures)
}

// KillCommand returns a copy of the job's kill command, or nil when none is
// set and the process engine should stop the job with a signal. An explicit
// empty list comes back empty but non-nil.
func (m *Mission) KillCommand() []string {
	if m.Job.Kill == nil {
		return nil
	}
	return slices.Clone(m.Job.Kill)
}

// OnSuccess returns the action to take after a successful run, if the job
// sets one.
func (m *Mission) OnSuccess() (jobspec.Action, bool) {
	return m.Job.OnSuccess, m.Job.OnSuccess != ""
}

// NeedStdout reports whether the job's stdout must be captured, not just stderr.
func (m *Mission) NeedStdout() bool {
	return Resolve(m.Job.NeedStdout, m.settings().AllJobs.NeedStdout, false)
}

// Analyzer returns the output analyzer for the job.
func (m *Mission) Analyzer() jobspec.AnalyzerRef {
	return Resolve(m.Job.Analyzer, m.settings().AllJobs.Analyzer, jobspec.DefaultAnalyzer)
}

// IgnoredLinesPatterns returns the patterns of output lines to drop, or nil.
// An explicitly empty list on the job disables the global patterns.
func (m *Mission) IgnoredLinesPatterns() []jobspec.LinePattern {
	patterns := Resolve(sliceRef(m.Job.IgnoredLines), sliceRef(m.settings().AllJobs.IgnoredLines), nil)
	if len(patterns) == 0 {
		return nil
	}
	return patterns
}

// SoundPlayerIfNeeded builds a sound player when the job enables sound.
// A backend failure is logged and yields nil: the job runs silently.
func (m *Mission) SoundPlayerIfNeeded() sound.Player {
	if !m.Job.Sound.IsEnabled() {
		return nil
	}
	newPlayer := m.NewSoundPlayer
	if newPlayer == nil {
		newPlayer = sound.New
	}
	player, err := newPlayer(m.Job.Sound.GetBaseVolume())
	if err != nil {
		m.logger().Warn("sound disabled", "job", m.JobRef.BadgeLabel(), "err", err)
		return nil
	}
	return player
}

func (m *Mission) logger() *log.Logger {
	if m.Logger == nil {
		return log.Default()
	}
	return m.Logger
}

func (m *Mission) lookupEnv(name string) (string, bool) {
	if m.LookupEnv == nil {
		return os.LookupEnv(name)
	}
	return m.LookupEnv(name)
}

var noSettings = &jobspec.Settings{}

func (m *Mission) settings() *jobspec.Settings {
	if m.Settings == nil {
		return noSettings
	}
	return m.Settings
}
