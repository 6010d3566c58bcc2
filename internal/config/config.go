// Package config provides configuration loading and validation for the
// ghrs report generator.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidTopN   = errors.New("report top_n must be positive")
	ErrInvalidTheme  = errors.New("report theme must be light or dark")
	ErrInvalidFormat = errors.New("report format must be html, yaml or json")
)

// Default configuration values.
const (
	DefaultTopN = 5

	defaultTheme  = "light"
	defaultFormat = "html"
)

// Report output formats.
const (
	FormatHTML = "html"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds all configuration for a report run.
type Config struct {
	Report  ReportConfig  `mapstructure:"report"`
	Input   InputConfig   `mapstructure:"input"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ReportConfig holds report-specific configuration.
type ReportConfig struct {
	TopN   int    `mapstructure:"top_n"`
	Theme  string `mapstructure:"theme"`
	Format string `mapstructure:"format"`
}

// InputConfig holds snapshot discovery configuration.
type InputConfig struct {
	ViewsClonesGlob string `mapstructure:"views_clones_glob"`
	ReferrerSuffix  string `mapstructure:"referrer_suffix"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file and GHRS_* environment
// variables, applying defaults and validation.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("ghrs")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
	}

	viperCfg.SetEnvPrefix("GHRS")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("report.top_n", DefaultTopN)
	viperCfg.SetDefault("report.theme", defaultTheme)
	viperCfg.SetDefault("report.format", defaultFormat)

	viperCfg.SetDefault("input.views_clones_glob", "*views_clones*.csv")
	viperCfg.SetDefault("input.referrer_suffix", "_top_referrers_snapshot.csv")

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")
}

func validate(config *Config) error {
	if config.Report.TopN <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopN, config.Report.TopN)
	}

	if config.Report.Theme != "light" && config.Report.Theme != "dark" {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, config.Report.Theme)
	}

	switch config.Report.Format {
	case FormatHTML, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Report.Format)
	}

	return nil
}
