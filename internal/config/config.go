package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "fftcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" envconfig:"SERVER"`
	Logging     LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
	Paths       PathsConfig       `yaml:"paths" envconfig:"PATHS"`
	Suppression SuppressionConfig `yaml:"suppression" envconfig:"SUPPRESSION"`
}

// ServerConfig contains HTTP server configuration for the run-trigger
// web surface.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RunTimeout      time.Duration `yaml:"run_timeout" envconfig:"RUN_TIMEOUT" default:"30m"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"25"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExtractsDir string `yaml:"extracts_dir" envconfig:"EXTRACTS_DIR" default:"data/extracts"`
	ReportsDir  string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// SuppressionConfig carries the disclosure-control constants. Defaults
// mirror the published national rules; validation rejects anything
// malformed at startup rather than per row.
type SuppressionConfig struct {
	Threshold    int `yaml:"threshold" envconfig:"THRESHOLD" default:"5" validate:"min=1"`
	CascadeDepth int `yaml:"cascade_depth" envconfig:"CASCADE_DEPTH" default:"2" validate:"min=1"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FFT", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration, including the disclosure-control
// constants. Called once at startup.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	// validator's min tag catches zero/negative values only after
	// defaults applied; re-check explicitly for overridden values.
	if c.Suppression.Threshold < 1 {
		return apperrors.NewConfigError(
			fmt.Sprintf("suppression threshold must be positive, got %d", c.Suppression.Threshold), nil)
	}
	if c.Suppression.CascadeDepth < 1 {
		return apperrors.NewConfigError(
			fmt.Sprintf("cascade depth must be positive, got %d", c.Suppression.CascadeDepth), nil)
	}
	return nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence
// for non-zero values).
func mergeConfigs(fileCfg, envCfg Config) Config {
	merged := fileCfg

	if envCfg.Server.Port != 0 {
		merged.Server.Port = envCfg.Server.Port
	}
	if envCfg.Logging.Level != "" {
		merged.Logging.Level = envCfg.Logging.Level
	}
	if envCfg.Logging.Output != "" {
		merged.Logging.Output = envCfg.Logging.Output
	}
	if envCfg.Paths.ExtractsDir != "" {
		merged.Paths.ExtractsDir = envCfg.Paths.ExtractsDir
	}
	if envCfg.Paths.ReportsDir != "" {
		merged.Paths.ReportsDir = envCfg.Paths.ReportsDir
	}
	if envCfg.Paths.LogsDir != "" {
		merged.Paths.LogsDir = envCfg.Paths.LogsDir
	}
	if envCfg.Suppression.Threshold != 0 {
		merged.Suppression.Threshold = envCfg.Suppression.Threshold
	}
	if envCfg.Suppression.CascadeDepth != 0 {
		merged.Suppression.CascadeDepth = envCfg.Suppression.CascadeDepth
	}

	return merged
}

// getConfigFilePath returns the config file path, next to the
// executable when resolvable, otherwise the working directory.
func getConfigFilePath() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), "config.yaml")
	}
	return "config.yaml"
}
