package cmd

import (
	"github.com/spf13/cobra"
	"stubber.dev/pkg/stubber/internal/domain"
)

// runTestsCmd represents the run-tests command.
var runTestsCmd = newRunTestsCmd()

func newRunTestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run-tests",
		Short: "Run the test suite",
		Long:  "Run the external test runner configured under " + testCommandKey + ". Its exit status is propagated unchanged.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.RunTool(cmd.Context(), domain.ToolArgs{
				Name:    "test runner",
				Command: commandFromConfig(testCommandKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(runTestsCmd)
}
