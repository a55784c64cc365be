package cmd

import (
	"github.com/spf13/cobra"
	"stubber.dev/pkg/stubber/internal/domain"
)

const preStageLongDescription = `Run import-fixtures, then the code formatter, then the test runner, in
that fixed order. The first failing step aborts the sequence and its
exit status is surfaced unchanged.`

// preStageCmd represents the pre-stage command.
var preStageCmd = newPreStageCmd()

func newPreStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pre-stage",
		Short: "Wire fixtures, format and test before staging changes",
		Long:  preStageLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.PreStage(cmd.Context(), domain.PreStageArgs{
				Import: importArgsFromConfig(false),
				Format: domain.ToolArgs{
					Name:    "formatter",
					Command: commandFromConfig(formatCommandKey),
				},
				Tests: domain.ToolArgs{
					Name:    "test runner",
					Command: commandFromConfig(testCommandKey),
				},
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(preStageCmd)
}
