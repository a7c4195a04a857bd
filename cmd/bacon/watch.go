// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"github.com/kpbaks/bacon/internal/issue"
	"github.com/kpbaks/bacon/internal/sound"
	"github.com/kpbaks/bacon/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCommand(app *App, flags *rootFlags) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [job[:test,...]]",
		Short: "Re-resolve a job whenever a watched file changes",
		Long: `Watch the job's paths and print the command it resolves to after every
change. Settings files are watched too: an edit to bacon.cue or bacon.toml
restarts the watcher with the new watch paths and ignore rules. Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var refArg string
			if len(args) == 1 {
				refArg = args[0]
			}
			return runWatch(cmd.Context(), app, cmd, flags, refArg, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before a change is handled (default 200ms)")
	return cmd
}

func runWatch(ctx context.Context, app *App, cmd *cobra.Command, flags *rootFlags, refArg string, debounce time.Duration) error {
	r, err := app.resolve(ctx, cmd, flags, refArg)
	if err != nil {
		return err
	}
	for r != nil {
		if r, err = watchSession(ctx, app, cmd, flags, refArg, debounce, r); err != nil {
			return err
		}
		if r != nil {
			app.logger.Info("settings changed, restarting watcher")
		}
	}
	return nil
}

// watchSession watches the paths of r until ctx ends or one of r's settings
// files changes. In the latter case it returns the settings reloaded from
// disk, so the caller can start over with their watch paths and ignore rules.
func watchSession(ctx context.Context, app *App, cmd *cobra.Command, flags *rootFlags, refArg string, debounce time.Duration, r *resolved) (*resolved, error) {
	player := r.mission.SoundPlayerIfNeeded()
	emit := func(current *resolved) {
		spec, err := buildCommand(current.mission)
		if err != nil {
			app.logger.Error("skipping cycle", "err", err)
			if player != nil {
				if err := player.Play(sound.BeepFailure); err != nil {
					app.logger.Debug("play sound", "err", err)
				}
			}
			return
		}
		fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("→"), CmdStyle.Render(spec.String()))
	}
	emit(r)

	sources := make([]string, 0, len(r.cfg.Sources))
	for _, src := range r.cfg.Sources {
		if abs, err := filepath.Abs(src); err == nil {
			src = abs
		}
		sources = append(sources, src)
	}

	sessionCtx, stop := context.WithCancel(ctx)
	defer stop()
	var reloaded atomic.Pointer[resolved]

	roots := append(slices.Clone(r.mission.PathsToWatch), sources...)
	w, err := watch.New(watch.Config{
		Roots:    roots,
		Ignore:   r.mission.IgnoreSet(),
		Debounce: debounce,
		Logger:   app.logger,
		OnChange: func(_ context.Context, changed []string) error {
			app.logger.Info("change detected", "files", len(changed))
			app.logger.Debug("changed files", "paths", changed)
			fresh, err := app.resolve(ctx, cmd, flags, refArg)
			if err != nil {
				app.logger.Error("reloading settings failed, keeping the previous ones", "err", err)
				emit(r)
				return nil
			}
			if slices.ContainsFunc(changed, func(p string) bool { return slices.Contains(sources, p) }) {
				reloaded.Store(fresh)
				stop()
				return nil
			}
			emit(fresh)
			return nil
		},
	})
	if err != nil {
		return nil, newServiceError(issue.Actionable("start watcher", err), issue.WatcherFailedId)
	}

	fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf("watching %d path(s), Ctrl+C to stop", len(roots))))
	if err := w.Run(sessionCtx); err != nil {
		return nil, newServiceError(issue.Actionable("watch files", err), issue.WatcherFailedId)
	}
	if ctx.Err() != nil {
		return nil, nil
	}
	return reloaded.Load(), nil
}
