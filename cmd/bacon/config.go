// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/kpbaks/bacon/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect bacon settings",
		Long: `Inspect bacon settings.

Preferences are read from prefs.cue or prefs.toml in the user config
directory, then overridden by the package's bacon.cue or bacon.toml.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, err := app.loadSettings(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			for _, src := range cfg.Sources {
				fmt.Fprintf(app.stdout, "# from %s\n", src)
			}
			return config.EncodeTOML(app.stdout, &cfg.Settings)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show where settings are looked up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs := flags.configPath
			if prefs == "" {
				dir, err := config.ConfigDir()
				if err != nil {
					return err
				}
				prefs = filepath.Join(dir, config.PrefsFileName+".{cue,toml}")
			}
			fmt.Fprintf(app.stdout, "%s%s\n", labelStyle.Render("preferences"), prefs)

			loc, cfg, err := app.loadSettings(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			pkg := config.PackageFile(loc.PackageDir)
			if pkg == "" {
				pkg = SubtitleStyle.Render("(none in " + loc.PackageDir + ")")
			}
			fmt.Fprintf(app.stdout, "%s%s\n", labelStyle.Render("package"), pkg)
			fmt.Fprintf(app.stdout, "%s%d file(s) applied\n", labelStyle.Render("loaded"), len(cfg.Sources))
			return nil
		},
	})
	return cfgCmd
}
