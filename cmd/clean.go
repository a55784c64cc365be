package cmd

import (
	"github.com/spf13/cobra"
	"stubber.dev/pkg/stubber/internal/domain"
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Run the code formatter",
		Long:  "Run the external code formatter configured under " + formatCommandKey + ".",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.RunTool(cmd.Context(), domain.ToolArgs{
				Name:    "formatter",
				Command: commandFromConfig(formatCommandKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
