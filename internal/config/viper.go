// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SMSX_LOG_LEVEL.
const EnvPrefix = "SMSX"

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls CSV output.
type CSVConfig struct {
	Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
	IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
}

// CategoriesConfig points at an optional category rules file.
type CategoriesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// OutputConfig holds the default rendering options.
type OutputConfig struct {
	Format         string `mapstructure:"format" yaml:"format"`
	ActionableOnly bool   `mapstructure:"actionable_only" yaml:"actionable_only"`
}

// AIConfig controls Gemini category enrichment.
type AIConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	Model             string `mapstructure:"model" yaml:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// BatchConfig controls directory processing.
type BatchConfig struct {
	Workers  int  `mapstructure:"workers" yaml:"workers"`
	FailFast bool `mapstructure:"fail_fast" yaml:"fail_fast"`
}

// APIConfig controls the HTTP server.
type APIConfig struct {
	Addr          string  `mapstructure:"addr" yaml:"addr"`
	RatePerSecond float64 `mapstructure:"rate_per_second" yaml:"rate_per_second"`
	Burst         int     `mapstructure:"burst" yaml:"burst"`
	MaxBodyChars  int     `mapstructure:"max_body_chars" yaml:"max_body_chars"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	CSV        CSVConfig        `mapstructure:"csv" yaml:"csv"`
	Categories CategoriesConfig `mapstructure:"categories" yaml:"categories"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	AI         AIConfig         `mapstructure:"ai" yaml:"ai"`
	Batch      BatchConfig      `mapstructure:"batch" yaml:"batch"`
	API        APIConfig        `mapstructure:"api" yaml:"api"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
// from the standard locations.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile loads defaults, then configFile (or config.yaml
// from the standard locations when empty), then environment overrides.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.sms-extract")
		v.AddConfigPath(".sms-extract")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key is always read from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("categories.file", "")

	v.SetDefault("output.format", models.FormatJSON)
	v.SetDefault("output.actionable_only", false)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.fail_fast", false)

	v.SetDefault("api.addr", ":8080")
	v.SetDefault("api.rate_per_second", 10.0)
	v.SetDefault("api.burst", 20)
	v.SetDefault("api.max_body_chars", 100000)
}

// Validate checks the configuration values. Callers that change a loaded
// Config (for example from command-line flags) validate it again.
func Validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if err := validation.IsValidDelimiter(config.CSV.Delimiter); err != nil {
		return err
	}

	if err := validation.IsValidOutputFormat(config.Output.Format); err != nil {
		return err
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	if config.API.RatePerSecond <= 0 {
		return fmt.Errorf("api.rate_per_second must be positive, got: %g", config.API.RatePerSecond)
	}
	if config.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1, got: %d", config.API.Burst)
	}
	if config.API.MaxBodyChars < 1 {
		return fmt.Errorf("api.max_body_chars must be at least 1, got: %d", config.API.MaxBodyChars)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
