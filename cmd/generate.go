package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"stubber.dev/pkg/stubber/internal/domain"
	m "stubber.dev/pkg/stubber/internal/model"
)

const generateLongDescription = `Recursively scan the source tree and create the mirrored test stub and
fixture stub for every source file that does not have them yet.

Existing files are never overwritten; re-running only fills gaps.`

// generateCmd represents the generate-test-files command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-test-files",
		Short: "Scaffold missing test and fixture stubs",
		Long:  generateLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Generate(cmd.Context(), domain.GenerateArgs{
				Layout:  layoutFromConfig(),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
