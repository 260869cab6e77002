package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/footballbetting/internal/logging"
	"github.com/mesh-intelligence/footballbetting/internal/paths"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	dotEnvFile     = ".env"

	// Config keys in config.yaml.
	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyDSN          = "dsn"
	cfgKeyDeletePolicy = "delete_policy"
	cfgKeyLogLevel     = "log_level"
	cfgKeyLogFormat    = "log_format"
)

// loadConfig reads config.yaml from configDir using Viper. A missing file
// is not an error; the defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyDeletePolicy, types.DeleteCascade)
	v.SetDefault(cfgKeyLogFormat, logging.FormatText)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.BindEnv(cfgKeyLogLevel, types.EnvPrefix+"LOG_LEVEL"); err != nil {
		return nil, err
	}
	if err := v.BindEnv(cfgKeyLogFormat, types.EnvPrefix+"LOG_FORMAT"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadDotEnv exports the variables of <configDir>/.env that are not already
// set in the environment.
func loadDotEnv(configDir string) error {
	err := godotenv.Load(filepath.Join(configDir, dotEnvFile))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", dotEnvFile, err)
}

// setup resolves the configuration and logger before any subcommand runs.
// Each setting follows the same precedence: flag, LEDGER_* environment
// variable (including .env), config.yaml, default.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := loadDotEnv(configDir); err != nil {
		return err
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	cfg := types.Config{
		Backend:      v.GetString(cfgKeyBackend),
		DataDir:      v.GetString(cfgKeyDataDir),
		DSN:          v.GetString(cfgKeyDSN),
		DeletePolicy: v.GetString(cfgKeyDeletePolicy),
	}
	if err := types.ApplyEnv(&cfg); err != nil {
		return err
	}
	if cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir); err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if a.flags.backend != "" {
		cfg.Backend = a.flags.backend
	}
	if a.flags.dsn != "" {
		cfg.DSN = a.flags.dsn
	}

	level := v.GetString(cfgKeyLogLevel)
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Config{
		Level:  level,
		Format: v.GetString(cfgKeyLogFormat),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	a.configDir = configDir
	a.config = cfg
	a.logger = logger
	logger.Debug("configuration resolved",
		"config_dir", configDir,
		"backend", cfg.Backend,
		"data_dir", cfg.DataDir,
		"delete_policy", cfg.EffectiveDeletePolicy(),
	)
	return nil
}
