package cmd

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splicer.dev/pkg/splicer/internal/domain"
	m "splicer.dev/pkg/splicer/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "splicer", configBaseName)
	assert.Equal(t, "splicer.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "SPLICER", envPrefix)
	assert.Equal(t, "synthesized*.rs", defaultBatchPattern)
	assert.Equal(t, "mutation_report.json", defaultBatchReportName)
	assert.Equal(t, 30*time.Second, defaultBatchTimeout)
	assert.Equal(t, "rust", defaultLanguage)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	// Fresh commands rebind every key to unchanged flags.
	newRootCmd()
	newBatchCmd()

	assert.Equal(t, int64(domain.DefaultSeed), viper.GetInt64(seedKey))
	assert.Equal(t, domain.DefaultMutations, viper.GetInt(mutationsKey))
	assert.Equal(t, domain.DefaultAttemptFactor, viper.GetInt(engineAttemptFactorKey))
	assert.InDelta(t, domain.DefaultDepthPenalty, viper.GetFloat64(engineDepthPenaltyKey), 1e-9)
	assert.True(t, viper.GetBool(engineFallbackDonorsKey))
	assert.Equal(t, defaultBatchParallel, viper.GetInt(batchParallelKey))
	assert.Equal(t, defaultBatchTimeout, batchTimeout())
}

func TestEngineConfigFromViper_Defaults(t *testing.T) {
	newRootCmd()

	cfg, err := engineConfigFromViper()
	require.NoError(t, err)
	assert.Empty(t, cfg.ExtraProtected)

	want := domain.DefaultEngineConfig(m.LanguageRust)
	want.ExtraProtected = cfg.ExtraProtected

	assert.Equal(t, want, cfg)
	assert.Equal(t, domain.DefaultMutations*domain.DefaultAttemptFactor, cfg.Budget())
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty falls back", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"info upper case", "INFO", slog.LevelInfo},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", " error ", slog.LevelError},
		{"numeric", "-4", slog.LevelDebug},
		{"garbage falls back", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger_SetsDefaultLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	configureLogger(filepath.Join(t.TempDir(), "splicer.log"), true)

	require.NotNil(t, globalLogger)
	assert.Same(t, globalLogger, slog.Default())
	assert.True(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))
}
