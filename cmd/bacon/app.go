// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/kpbaks/bacon/internal/config"
	"github.com/kpbaks/bacon/internal/issue"
	"github.com/kpbaks/bacon/internal/location"
	"github.com/kpbaks/bacon/internal/mission"
	"github.com/kpbaks/bacon/pkg/jobspec"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. Command handlers receive
	// an App and delegate to its services.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger
	}

	// Dependencies are the injection points of NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// resolved is everything a subcommand needs about one job.
	resolved struct {
		loc     *location.Location
		cfg     *config.Config
		mission *mission.Mission
	}
)

// NewApp creates an App.
func NewApp(deps Dependencies) *App {
	app := &App{Config: deps.Config, stdout: deps.Stdout, stderr: deps.Stderr}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.logger = log.NewWithOptions(app.stderr, log.Options{Prefix: "bacon"})
	return app
}

// loadSettings finds the package and loads its settings.
func (a *App) loadSettings(ctx context.Context, cmd *cobra.Command, flags *rootFlags) (*location.Location, *config.Config, error) {
	loc, err := location.Find(flags.path)
	if err != nil {
		return nil, nil, newServiceError(err, issue.NoPackageFoundId)
	}
	if !loc.HasManifest {
		a.logger.Warn("no Cargo.toml or bacon settings file found", "dir", loc.ExecutionDir)
	}

	cfg, err := a.Config.Load(ctx, flags.loadOptions(cmd, loc.PackageDir, a.logger))
	if err != nil {
		return nil, nil, newServiceError(err, issue.JobFileParseErrorId)
	}
	return loc, cfg, nil
}

// resolve loads the settings and builds the mission for refArg. An empty
// refArg selects the default job.
func (a *App) resolve(ctx context.Context, cmd *cobra.Command, flags *rootFlags, refArg string) (*resolved, error) {
	loc, cfg, err := a.loadSettings(ctx, cmd, flags)
	if err != nil {
		return nil, err
	}

	var ref jobspec.ConcreteJobRef
	if refArg != "" {
		if ref, err = jobspec.ParseConcreteJobRef(refArg); err != nil {
			return nil, exitWith(ExitUsage, err)
		}
	}

	m, err := loc.Mission(ref, &cfg.Settings, a.logger)
	if err != nil {
		if errors.Is(err, location.ErrUnknownJob) {
			return nil, exitWith(ExitUsage, newServiceError(err, issue.JobNotFoundId))
		}
		return nil, err
	}
	return &resolved{loc: loc, cfg: cfg, mission: m}, nil
}

// buildCommand builds the mission's command, attaching the catalog entry to
// configuration errors.
func buildCommand(m *mission.Mission) (*mission.CommandSpec, error) {
	spec, err := m.BuildCommand()
	if err != nil {
		var cfgErr *mission.ConfigurationError
		if errors.As(err, &cfgErr) && errors.Is(err, mission.ErrEmptyCommand) {
			return nil, exitWith(ExitConfig, newServiceError(err, issue.EmptyCommandId))
		}
		return nil, exitWith(ExitConfig, err)
	}
	return spec, nil
}
