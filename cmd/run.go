package cmd

import (
	"github.com/spf13/cobra"
	"stubber.dev/pkg/stubber/internal/domain"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the dev server",
		Long:  "Start the external web-framework dev server configured under " + serverCommandKey + ".",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.RunTool(cmd.Context(), domain.ToolArgs{
				Name:    "dev server",
				Command: commandFromConfig(serverCommandKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
