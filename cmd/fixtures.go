package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"stubber.dev/pkg/stubber/internal/domain"
	m "stubber.dev/pkg/stubber/internal/model"
)

var importParallelFlag int
var importDryRunFlag bool

const importLongDescription = `Scan the fixture tree for fixture definitions and rewrite the managed
region of the shared fixtures file to import exactly the set found,
sorted by path then definition order.

A fixture name defined in more than one stub is a conflict: it is
reported, the command exits nonzero and the shared file is left
untouched.`

// importFixturesCmd represents the import-fixtures command.
var importFixturesCmd = newImportFixturesCmd()

func newImportFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-fixtures",
		Short: "Rewrite the shared fixture imports",
		Long:  importLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.ImportFixtures(cmd.Context(), importArgsFromConfig(importDryRunFlag))
		},
	}
}

func init() {
	// Flags are attached here, after config.go's init(), so their
	// defaults reflect the viper configuration.
	configureImportFixturesFlags(importFixturesCmd)
	rootCmd.AddCommand(importFixturesCmd)
}

func configureImportFixturesFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&importParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers for fixture scanning")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
	cmd.Flags().BoolVar(&importDryRunFlag, dryRunFlagName, false, "print the managed-region diff without writing")
}

func importArgsFromConfig(dryRun bool) domain.ImportArgs {
	return domain.ImportArgs{
		Layout:   layoutFromConfig(),
		Parallel: viper.GetInt(parallelConfigKey),
		DryRun:   dryRun,
		Reports:  m.Path(viper.GetString(outputFlagName)),
	}
}
