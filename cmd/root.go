// Package cmd provides the root command and CLI setup for stubber.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"stubber.dev/pkg/stubber/internal/adapter"
	"stubber.dev/pkg/stubber/internal/controller"
	"stubber.dev/pkg/stubber/internal/domain"
	m "stubber.dev/pkg/stubber/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var toolRunner adapter.ToolRunnerAdapter
var reportStore adapter.ReportStore
var ui controller.UI
var workflow domain.Workflow

// sourceRootFlag and friends are root-level flags shared by the sweep commands.
var sourceRootFlag string
var testRootFlag string
var fixtureRootFlag string
var fixturesFileFlag string

// reportsOutputDirFlag is a root-level flag shared by commands that write run reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters source files for applicable commands.
var excludePatterns []string

var verboseFlag bool
var logFileFlag string

func init() {
	// Runs after config.go's init(), so the viper defaults are live when
	// the flags capture them.
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	toolRunner = adapter.NewLocalToolRunnerAdapter(os.Stdout, os.Stderr)
	reportStore = adapter.NewYAMLReportStore()
	workflow = domain.NewWorkflow(fsAdapter, toolRunner, reportStore, ui)
}

const rootLongDescription = `Stubber keeps a Python project's test tree in sync with its source tree.

It mirrors every source module into an empty test stub and fixture stub,
wires discovered pytest fixtures into the shared fixtures file, and prunes
stubs that were never filled in. The dev server, code formatter and test
runner are external tools configured in ` + configFileName + `.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stubber",
		Short: "Test scaffolding and fixture wiring for Python projects",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&sourceRootFlag, sourceFlagName, viper.GetString(sourceConfigKey), "root of the source tree")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(sourceFlagName), sourceConfigKey)

	cmd.PersistentFlags().StringVar(&testRootFlag, testsFlagName, viper.GetString(testsConfigKey), "root of the mirrored test tree")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(testsFlagName), testsConfigKey)

	cmd.PersistentFlags().StringVar(&fixtureRootFlag, fixturesFlagName, viper.GetString(fixturesConfigKey), "root of the mirrored fixture tree")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(fixturesFlagName), fixturesConfigKey)

	cmd.PersistentFlags().StringVar(&fixturesFileFlag, fixturesFileFlagName, viper.GetString(fixturesFileConfigKey), "shared fixture-import file holding the managed region")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(fixturesFileFlagName), fixturesFileConfigKey)

	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude source files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (default "+defaultLogFilename+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// layoutFromConfig builds the directory layout the sweeps operate on.
func layoutFromConfig() m.Layout {
	return m.Layout{
		SourceRoot:  m.Path(viper.GetString(sourceConfigKey)),
		TestRoot:    m.Path(viper.GetString(testsConfigKey)),
		FixtureRoot: m.Path(viper.GetString(fixturesConfigKey)),
		SharedFile:  m.Path(viper.GetString(fixturesFileConfigKey)),
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// External tool exit codes are surfaced unchanged.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var exitErr *domain.ExitStatusError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		os.Exit(1)
	}
}
