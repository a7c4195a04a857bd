// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newJobsCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List the available jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, err := app.loadSettings(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			s := &cfg.Settings
			for _, name := range s.JobNames() {
				job, _ := s.Job(name)
				marker := " "
				if name == s.DefaultJob {
					marker = "*"
				}
				command := strings.Join(job.Command, " ")
				if command == "" {
					command = job.CommandLine
				}
				fmt.Fprintf(app.stdout, "%s %s %s\n", marker, CmdStyle.Render(fmt.Sprintf("%-12s", name)), command)
			}
			return nil
		},
	}
}
