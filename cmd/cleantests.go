package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"stubber.dev/pkg/stubber/internal/domain"
	m "stubber.dev/pkg/stubber/internal/model"
)

const cleanTestsLongDescription = `Delete test and fixture stubs whose content is still the untouched
generation template (compared whitespace-normalized), then collapse any
directory left empty. Edited files are never removed; running twice in a
row is a no-op the second time.`

// cleanTestsCmd represents the clean-unused-tests command.
var cleanTestsCmd = newCleanTestsCmd()

func newCleanTestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean-unused-tests",
		Short: "Delete stubs that were never filled in",
		Long:  cleanTestsLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.CleanStubs(cmd.Context(), domain.CleanArgs{
				Layout:  layoutFromConfig(),
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(cleanTestsCmd)
}
