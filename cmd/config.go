package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"splicer.dev/pkg/splicer/internal/domain"
	m "splicer.dev/pkg/splicer/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "splicer"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	languageFlagName  = "language"
	seedFlagName      = "seed"
	mutationsFlagName = "mutations"
	verboseFlagName   = "verbose"
	logFlagName       = "log"

	attemptFactorFlagName = "attempt-factor"
	protectFlagName       = "protect"

	languageKey  = "language"
	seedKey      = "seed"
	mutationsKey = "mutations"

	engineAttemptFactorKey   = "engine.attempt_factor"
	engineDepthPenaltyKey    = "engine.depth_penalty"
	engineJitterKey          = "engine.jitter"
	engineMinDonorLenKey     = "engine.min_donor_len"
	engineMaxDonorLenKey     = "engine.max_donor_len"
	engineMaxDonorRetriesKey = "engine.max_donor_retries"
	engineProtectKey         = "engine.protect"
	engineFallbackDonorsKey  = "engine.fallback_donors"

	batchDataDirKey   = "batch.data_dir"
	batchPatternKey   = "batch.pattern"
	batchOutputDirKey = "batch.output_dir"
	batchMaxFilesKey  = "batch.max_files"
	batchParallelKey  = "batch.parallel"
	batchTimeoutKey   = "batch.timeout"
	batchReportKey    = "batch.report"

	defaultLanguage        = string(m.LanguageRust)
	defaultBatchDataDir    = "data"
	defaultBatchPattern    = "synthesized*.rs"
	defaultBatchOutputDir  = "data/mutated_synthesized"
	defaultBatchMaxFiles   = 0
	defaultBatchParallel   = 1
	defaultBatchTimeout    = 30 * time.Second
	defaultBatchReportName = "mutation_report.json"
	defaultPoolSamples     = 3

	envPrefix = "SPLICER"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".splicer.log"
	defaultLogLevel      = int(slog.LevelInfo)
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

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(languageKey, defaultLanguage)
	viper.SetDefault(seedKey, domain.DefaultSeed)
	viper.SetDefault(mutationsKey, domain.DefaultMutations)

	viper.SetDefault(engineAttemptFactorKey, domain.DefaultAttemptFactor)
	viper.SetDefault(engineDepthPenaltyKey, domain.DefaultDepthPenalty)
	viper.SetDefault(engineJitterKey, domain.DefaultJitter)
	viper.SetDefault(engineMinDonorLenKey, domain.DefaultMinDonorLen)
	viper.SetDefault(engineMaxDonorLenKey, domain.DefaultMaxDonorLen)
	viper.SetDefault(engineMaxDonorRetriesKey, 0)
	viper.SetDefault(engineProtectKey, []string{})
	viper.SetDefault(engineFallbackDonorsKey, true)

	viper.SetDefault(batchDataDirKey, defaultBatchDataDir)
	viper.SetDefault(batchPatternKey, defaultBatchPattern)
	viper.SetDefault(batchOutputDirKey, defaultBatchOutputDir)
	viper.SetDefault(batchMaxFilesKey, defaultBatchMaxFiles)
	viper.SetDefault(batchParallelKey, defaultBatchParallel)
	viper.SetDefault(batchTimeoutKey, int64(defaultBatchTimeout.Seconds()))
	viper.SetDefault(batchReportKey, defaultBatchReportName)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
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

// engineConfigFromViper assembles the session configuration from flags, env and config file.
func engineConfigFromViper() (domain.EngineConfig, error) {
	lang, err := m.ParseLanguage(viper.GetString(languageKey))
	if err != nil {
		return domain.EngineConfig{}, err
	}

	cfg := domain.DefaultEngineConfig(lang)
	cfg.Mutations = viper.GetInt(mutationsKey)
	cfg.Seed = viper.GetInt64(seedKey)
	cfg.AttemptFactor = viper.GetInt(engineAttemptFactorKey)
	cfg.DepthPenalty = viper.GetFloat64(engineDepthPenaltyKey)
	cfg.Jitter = viper.GetFloat64(engineJitterKey)
	cfg.MinDonorLen = viper.GetInt(engineMinDonorLenKey)
	cfg.MaxDonorLen = viper.GetInt(engineMaxDonorLenKey)
	cfg.MaxDonorRetries = viper.GetInt(engineMaxDonorRetriesKey)
	cfg.ExtraProtected = viper.GetStringSlice(engineProtectKey)
	cfg.UseFallbackDonors = viper.GetBool(engineFallbackDonorsKey)

	if err := cfg.Validate(); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("configuration: %w", err)
	}

	return cfg, nil
}

func batchTimeout() time.Duration {
	return time.Duration(viper.GetInt64(batchTimeoutKey)) * time.Second
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
