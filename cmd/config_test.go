package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"phpmin.dev/pkg/phpmin/internal/domain"
	m "phpmin.dev/pkg/phpmin/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "phpmin", configBaseName)
	assert.Equal(t, "phpmin.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "scheme", schemeFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "exclude.paths", excludeConfigKey)
	assert.Equal(t, "symbols.scope", scopeConfigKey)
	assert.Equal(t, "functions.legacy_substring", legacyFunctionsConfigKey)
	assert.Equal(t, 1, defaultScheme)
	assert.Equal(t, "run", defaultScope)
	assert.Equal(t, "PHPMIN", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, domain.DefaultExtensions, viper.GetStringSlice(extensionsConfigKey))
	assert.Equal(t, domain.DefaultExcludedVariables, viper.GetStringSlice(excludedVariablesKey))
	assert.Equal(t, domain.DefaultExcludedFunctions, viper.GetStringSlice(excludedFunctionsKey))
}

func TestDomainConfig(t *testing.T) {
	t.Setenv("PHPMIN_FUNCTIONS_LEGACY_SUBSTRING", "true")

	cfg := domainConfig()

	assert.GreaterOrEqual(t, cfg.Scheme, m.SchemeStrip)
	assert.True(t, cfg.LegacyFunctionSubstitution)
	assert.True(t, cfg.ExcludedVariables.Contains("_SERVER"))
	assert.True(t, cfg.ExcludedFunctions.Contains("__construct"))
	assert.True(t, cfg.Eligible("index.php"))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}
