// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"ledgerline/bankstmt-csv/internal/models"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Parse struct {
		MaxPDFPages         int     `mapstructure:"max_pdf_pages" yaml:"max_pdf_pages"`
		MinTextLength       int     `mapstructure:"min_text_length" yaml:"min_text_length"`
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
	} `mapstructure:"parse" yaml:"parse"`

	Recurring struct {
		AmountVariance float64 `mapstructure:"amount_variance" yaml:"amount_variance"`
		MinOccurrences int     `mapstructure:"min_occurrences" yaml:"min_occurrences"`
	} `mapstructure:"recurring" yaml:"recurring"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Store struct {
		MappingsFile string `mapstructure:"mappings_file" yaml:"mappings_file"`
	} `mapstructure:"store" yaml:"store"`
}

// InitializeConfig loads configuration with hierarchical precedence:
// defaults, then an optional config.yaml, then BANKSTMT_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.bankstmt-csv")
	v.AddConfigPath(".bankstmt-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BANKSTMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the unprefixed env var.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("parse.max_pdf_pages", models.MaxPDFPages)
	v.SetDefault("parse.min_text_length", models.MinTextLength)
	v.SetDefault("parse.confidence_threshold", models.ConfidenceThreshold)

	v.SetDefault("recurring.amount_variance", 0.10)
	v.SetDefault("recurring.min_occurrences", 2)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("store.mappings_file", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Parse.MaxPDFPages < 1 {
		return fmt.Errorf("parse.max_pdf_pages must be positive, got: %d", config.Parse.MaxPDFPages)
	}

	if config.Parse.ConfidenceThreshold < 0.0 || config.Parse.ConfidenceThreshold > 1.0 {
		return fmt.Errorf("parse.confidence_threshold must be between 0.0 and 1.0, got: %f", config.Parse.ConfidenceThreshold)
	}

	if config.Recurring.AmountVariance <= 0.0 || config.Recurring.AmountVariance >= 1.0 {
		return fmt.Errorf("recurring.amount_variance must be in (0, 1), got: %f", config.Recurring.AmountVariance)
	}

	if config.Recurring.MinOccurrences < 2 {
		return fmt.Errorf("recurring.min_occurrences must be at least 2, got: %d", config.Recurring.MinOccurrences)
	}

	if config.AI.Enabled && config.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger from the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
