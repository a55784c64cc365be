package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "stubber"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	sourceFlagName       = "source"
	testsFlagName        = "tests"
	fixturesFlagName     = "fixtures"
	fixturesFileFlagName = "fixtures-file"
	outputFlagName       = "output"
	excludeFlagName      = "exclude"
	verboseFlagName      = "verbose"
	logFileFlagName      = "log-file"
	dryRunFlagName       = "dry-run"
	parallelFlagName     = "parallel"

	sourceConfigKey       = "paths.source"
	testsConfigKey        = "paths.tests"
	fixturesConfigKey     = "paths.fixtures"
	excludeConfigKey      = "paths.exclude"
	fixturesFileConfigKey = "fixtures.file"
	parallelConfigKey     = "fixtures.parallel"
	serverCommandKey      = "server.command"
	formatCommandKey      = "format.command"
	testCommandKey        = "test.command"

	defaultSourceRoot   = "src"
	defaultTestRoot     = "tests"
	defaultFixtureRoot  = "tests/fixtures"
	defaultFixturesFile = "tests/fixtures/conftest.py"
	defaultReportsDir   = ".stubber-reports"
	defaultParallel     = 1

	defaultServerCommand = "uvicorn src.main:app --reload"
	defaultFormatCommand = "black ."
	defaultTestCommand   = "pytest"

	envPrefix = "STUBBER"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".stubber.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(sourceConfigKey, defaultSourceRoot)
	viper.SetDefault(testsConfigKey, defaultTestRoot)
	viper.SetDefault(fixturesConfigKey, defaultFixtureRoot)
	viper.SetDefault(fixturesFileConfigKey, defaultFixturesFile)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(parallelConfigKey, defaultParallel)
	viper.SetDefault(serverCommandKey, defaultServerCommand)
	viper.SetDefault(formatCommandKey, defaultFormatCommand)
	viper.SetDefault(testCommandKey, defaultTestCommand)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// commandFromConfig splits an external tool command line configured under key.
func commandFromConfig(key string) []string {
	return strings.Fields(viper.GetString(key))
}
