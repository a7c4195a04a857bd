// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpbaks/bacon/internal/issue"
	"github.com/kpbaks/bacon/pkg/jobspec"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	// AppName names the config directory and the environment prefix.
	AppName = "bacon"
	// PrefsFileName is the user preferences file, without extension.
	PrefsFileName = "prefs"
	// PackageFileName is the per-package settings file, without extension.
	PackageFileName = "bacon"

	keyFeatures           = "features"
	keyNoDefaultFeatures  = "no_default_features"
	keyAllFeatures        = "all_features"
	keyAdditionalJobArgs  = "additional_job_args"
	keySingleTestCommands = "single_test_commands"
	keyDefaultJob         = "default_job"
)

// ErrPrefsNotFound is returned when an explicit preferences file is missing.
var ErrPrefsNotFound = errors.New("preferences file not found")

// Config is the outcome of a load.
type Config struct {
	Settings jobspec.Settings
	// Sources lists the applied settings files, lowest priority first.
	Sources []string
}

// ConfigDir returns the directory holding the user preferences file.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// PackageFile returns the bacon.cue or bacon.toml file of a package
// directory, or "" when there is none.
func PackageFile(packageDir string) string {
	return findFile(packageDir, PackageFileName)
}

func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	v := viper.New()
	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault(keyNoDefaultFeatures, false)
	v.SetDefault(keyAllFeatures, false)
	v.SetDefault(keyAdditionalJobArgs, []string{})
	v.SetDefault(keySingleTestCommands, defaults.SingleTestCommands)
	v.SetDefault(keyDefaultJob, string(defaults.DefaultJob))

	cfg := &Config{Settings: defaults}

	paths, err := settingsFiles(opts)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		f, err := ReadFile(path)
		if err != nil {
			return nil, issue.Actionable("load settings file", err,
				issue.In(path),
				issue.Hint("Check the file syntax and field names"),
				issue.Hint("Run 'bacon config show' without the file to see the expected layout"))
		}
		if err := v.MergeConfigMap(f.scalars()); err != nil {
			return nil, fmt.Errorf("merge %s: %w", path, err)
		}
		f.applyJobs(&cfg.Settings)
		cfg.Sources = append(cfg.Sources, path)
		logger.Debug("applied settings file", "path", path, "jobs", len(f.Jobs))
	}

	opts.Overrides.apply(v)

	if err := readScalars(v, &cfg.Settings); err != nil {
		return nil, err
	}

	if err := cfg.Settings.Validate(); err != nil {
		return nil, issue.Actionable("validate settings", err,
			issue.Hint("Fix the reported fields in your bacon or prefs file"))
	}
	return cfg, nil
}

// settingsFiles lists the files to apply, lowest priority first.
func settingsFiles(opts LoadOptions) ([]string, error) {
	var paths []string

	switch {
	case opts.ConfigFilePath != "":
		if !fileExists(opts.ConfigFilePath) {
			return nil, issue.Actionable("load preferences", ErrPrefsNotFound,
				issue.In(opts.ConfigFilePath),
				issue.Hint("Check the --config path"))
		}
		paths = append(paths, opts.ConfigFilePath)
	case !opts.SkipPrefs:
		dir := opts.ConfigDirPath
		if dir == "" {
			var err error
			if dir, err = ConfigDir(); err != nil {
				return nil, err
			}
		}
		if p := findFile(dir, PrefsFileName); p != "" {
			paths = append(paths, p)
		}
	}

	if opts.PackageDir != "" {
		if p := PackageFile(opts.PackageDir); p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// scalars returns the global values this file sets, keyed for viper.
func (f *File) scalars() map[string]any {
	m := make(map[string]any)
	if f.Features != nil {
		m[keyFeatures] = *f.Features
	}
	if f.NoDefaultFeatures != nil {
		m[keyNoDefaultFeatures] = *f.NoDefaultFeatures
	}
	if f.AllFeatures != nil {
		m[keyAllFeatures] = *f.AllFeatures
	}
	if f.AdditionalJobArgs != nil {
		m[keyAdditionalJobArgs] = f.AdditionalJobArgs
	}
	if f.SingleTestCommands != nil {
		m[keySingleTestCommands] = f.SingleTestCommands
	}
	if f.DefaultJob != nil {
		m[keyDefaultJob] = *f.DefaultJob
	}
	return m
}

// applyJobs overlays the file's jobs and job defaults onto s.
func (f *File) applyJobs(s *jobspec.Settings) {
	if s.Jobs == nil {
		s.Jobs = make(map[jobspec.JobName]jobspec.Job, len(f.Jobs))
	}
	for name, job := range f.Jobs {
		s.Jobs[jobspec.JobName(name)] = job
	}
	if f.AllJobs != nil {
		s.AllJobs = mergeJobDefaults(s.AllJobs, *f.AllJobs)
	}
}

// mergeJobDefaults overlays over onto base: env entries are merged, other
// fields replace when set.
func mergeJobDefaults(base, over jobspec.JobDefaults) jobspec.JobDefaults {
	out := base
	if len(over.Env) > 0 {
		out.Env = maps.Clone(base.Env)
		if out.Env == nil {
			out.Env = make(map[string]string, len(over.Env))
		}
		maps.Copy(out.Env, over.Env)
	}
	if over.NeedStdout != nil {
		out.NeedStdout = over.NeedStdout
	}
	if over.IgnoredLines != nil {
		out.IgnoredLines = over.IgnoredLines
	}
	if over.Analyzer != nil {
		out.Analyzer = over.Analyzer
	}
	return out
}

func readScalars(v *viper.Viper, s *jobspec.Settings) error {
	if v.IsSet(keyFeatures) {
		features := v.GetString(keyFeatures)
		s.Features = &features
	}
	s.NoDefaultFeatures = v.GetBool(keyNoDefaultFeatures)
	s.AllFeatures = v.GetBool(keyAllFeatures)
	s.AdditionalJobArgs = v.GetStringSlice(keyAdditionalJobArgs)
	s.DefaultJob = jobspec.JobName(v.GetString(keyDefaultJob))

	var single [][]string
	if err := v.UnmarshalKey(keySingleTestCommands, &single); err != nil {
		return fmt.Errorf("decode %s: %w", keySingleTestCommands, err)
	}
	if single == nil {
		single = [][]string{}
	}
	s.SingleTestCommands = single
	return nil
}
