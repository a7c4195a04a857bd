// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/kpbaks/bacon/internal/mission"

	"github.com/spf13/cobra"
)

func newResolveCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [job[:test,...]]",
		Short: "Show what a job would run, without running it",
		Long: `Show the command a job resolves to, with its directory, environment and
policies, and the paths that would be watched or ignored.

Without an argument the default job is resolved. A scope after ':' narrows a
test job to some tests, e.g. "test:parse,lex".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var refArg string
			if len(args) == 1 {
				refArg = args[0]
			}
			r, err := app.resolve(cmd.Context(), cmd, flags, refArg)
			if err != nil {
				return err
			}
			spec, err := buildCommand(r.mission)
			if err != nil {
				return err
			}
			renderMission(app.stdout, r.mission, spec)
			return nil
		},
	}
}

// renderMission prints a mission and its command as aligned label/value lines.
func renderMission(w io.Writer, m *mission.Mission, spec *mission.CommandSpec) {
	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render(m.LocationName), CmdStyle.Render(m.JobRef.BadgeLabel()))

	field := func(label string, values ...string) {
		if len(values) == 0 {
			values = []string{SubtitleStyle.Render("(none)")}
		}
		for i, v := range values {
			if i > 0 {
				label = ""
			}
			fmt.Fprintf(w, "  %s%s\n", labelStyle.Render(label), v)
		}
	}

	field("command", spec.String())
	field("directory", spec.Dir)
	env := make([]string, 0, len(spec.Env))
	for _, k := range slices.Sorted(maps.Keys(spec.Env)) {
		env = append(env, k+"="+spec.Env[k])
	}
	field("env", env...)
	field("need stdout", fmt.Sprint(spec.NeedStdout))
	field("analyzer", m.Analyzer().String())

	kill := "(signal)"
	switch k := m.KillCommand(); {
	case k == nil:
	case len(k) == 0:
		kill = "(empty)"
	default:
		kill = strings.Join(k, " ")
	}
	field("kill", kill)

	patterns := m.IgnoredLinesPatterns()
	lines := make([]string, len(patterns))
	for i, p := range patterns {
		lines[i] = p.String()
	}
	field("ignored lines", lines...)
	field("ignore", m.IgnoreSet().String())
	field("watch", m.PathsToWatch...)

	sound := "off"
	if m.Job.Sound.IsEnabled() {
		sound = fmt.Sprintf("on (volume %d)", m.Job.Sound.GetBaseVolume())
	}
	field("sound", sound)
	if action, ok := m.OnSuccess(); ok {
		field("on success", action.String())
	} else {
		field("on success")
	}
	field("on warnings", verdict(m.Job.AllowWarnings))
	field("on failures", verdict(m.Job.AllowFailures))
}

func verdict(allowed bool) string {
	if allowed {
		return SuccessStyle.Render("success")
	}
	return WarningStyle.Render("failure")
}
