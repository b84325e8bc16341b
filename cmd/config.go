package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"phpmin.dev/pkg/phpmin/internal/domain"
	m "phpmin.dev/pkg/phpmin/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "phpmin"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName          = "output"
	schemeFlagName          = "scheme"
	excludeFlagName         = "exclude"
	extensionsFlagName      = "ext"
	verboseFlagName         = "verbose"
	logFileFlagName         = "log-file"
	scopeFlagName           = "scope"
	parallelFlagName        = "parallel"
	symbolsFlagName         = "symbols"
	legacyFunctionsFlagName = "legacy-functions"
	contextFlagName         = "context"

	outputConfigKey          = "output"
	schemeConfigKey          = "scheme"
	excludeConfigKey         = "exclude.paths"
	extensionsConfigKey      = "extensions"
	excludedVariablesKey     = "exclude.variables"
	excludedFunctionsKey     = "exclude.functions"
	scopeConfigKey           = "symbols.scope"
	symbolsExportConfigKey   = "symbols.export"
	legacyFunctionsConfigKey = "functions.legacy_substring"
	parallelConfigKey        = "run.parallel"

	defaultScheme   = int(m.SchemeStrip)
	defaultScope    = string(m.ScopeRun)
	defaultParallel = 1

	envPrefix = "PHPMIN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".phpmin.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
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

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func setDefaults() {
	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputConfigKey, domain.DefaultOutputDir)
	viper.SetDefault(schemeConfigKey, defaultScheme)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(extensionsConfigKey, domain.DefaultExtensions)
	viper.SetDefault(excludedVariablesKey, domain.DefaultExcludedVariables)
	viper.SetDefault(excludedFunctionsKey, domain.DefaultExcludedFunctions)
	viper.SetDefault(scopeConfigKey, defaultScope)
	viper.SetDefault(symbolsExportConfigKey, "")
	viper.SetDefault(legacyFunctionsConfigKey, false)
	viper.SetDefault(parallelConfigKey, defaultParallel)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// domainConfig builds the core configuration from the merged flag/env/file values.
func domainConfig() domain.Config {
	scheme := m.Scheme(viper.GetInt(schemeConfigKey))
	if scheme < m.SchemeStrip {
		scheme = m.SchemeStrip
	}

	return domain.Config{
		Scheme:                     scheme,
		Extensions:                 viper.GetStringSlice(extensionsConfigKey),
		ExcludedVariables:          domain.NewExclusionSet(viper.GetStringSlice(excludedVariablesKey)...),
		ExcludedFunctions:          domain.NewExclusionSet(viper.GetStringSlice(excludedFunctionsKey)...),
		LegacyFunctionSubstitution: viper.GetBool(legacyFunctionsConfigKey),
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
// By default it logs at the configured level; if verbose is true it logs at Debug.
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
