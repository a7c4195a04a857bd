// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the bacon command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kpbaks/bacon/internal/config"
	"github.com/kpbaks/bacon/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

type rootFlags struct {
	verbose           bool
	configPath        string
	noPrefs           bool
	path              string
	features          string
	noDefaultFeatures bool
	allFeatures       bool
	jobArgs           []string
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "bacon",
		Short: "Resolve and watch cargo jobs",
		Long: TitleStyle.Render("bacon") + SubtitleStyle.Render(" - background code checker") + `

bacon turns the jobs of your settings into the exact command to run on every
change: feature flags merged, tests scoped, environment expanded, and the
files to watch or ignore worked out.

Jobs come from the built-in set, your preferences file, and the package's
bacon.cue or bacon.toml.

` + SubtitleStyle.Render("Examples:") + `
  bacon jobs                 List the available jobs
  bacon resolve              Show the command of the default job
  bacon resolve test:parse   Show the test job scoped to the "parse" test
  bacon watch clippy         Re-resolve clippy whenever a watched file changes
  bacon config show          Print the effective settings as TOML`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if flags.verbose {
				app.logger.SetLevel(log.DebugLevel)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "preferences file (default is <user config dir>/bacon/prefs.{cue,toml})")
	pf.BoolVar(&flags.noPrefs, "no-prefs", false, "ignore the user preferences file")
	pf.StringVarP(&flags.path, "path", "p", ".", "project directory")
	pf.StringVar(&flags.features, "features", "", "comma-separated features to enable on every job")
	pf.BoolVar(&flags.noDefaultFeatures, "no-default-features", false, "disable the default features")
	pf.BoolVar(&flags.allFeatures, "all-features", false, "enable all features")
	pf.StringArrayVar(&flags.jobArgs, "job-arg", nil, "extra argument appended to every job (repeatable)")

	root.AddCommand(
		newJobsCommand(app, flags),
		newResolveCommand(app, flags),
		newWatchCommand(app, flags),
		newConfigCommand(app, flags),
	)
	return root
}

// Execute runs the command line and exits with its status.
func Execute() {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(app.stderr, svcErr)
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) && len(ae.Hints) > 0 {
		fmt.Fprintln(app.stderr, ae.Format(app.logger.GetLevel() == log.DebugLevel))
	}

	code := ExitFailure
	if exitErr := (*ExitError)(nil); errors.As(err, &exitErr) {
		code = exitErr.Code
	}
	os.Exit(int(code))
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// loadOptions turns the flags into config loading inputs.
func (f *rootFlags) loadOptions(cmd *cobra.Command, packageDir string, logger *log.Logger) config.LoadOptions {
	opts := config.LoadOptions{
		ConfigFilePath: f.configPath,
		SkipPrefs:      f.noPrefs,
		PackageDir:     packageDir,
		Logger:         logger,
	}
	changed := cmd.Flags().Changed
	if changed("features") {
		opts.Overrides.Features = &f.features
	}
	if changed("no-default-features") {
		opts.Overrides.NoDefaultFeatures = &f.noDefaultFeatures
	}
	if changed("all-features") {
		opts.Overrides.AllFeatures = &f.allFeatures
	}
	if changed("job-arg") {
		opts.Overrides.AdditionalJobArgs = f.jobArgs
	}
	return opts
}
