// Package config provides configuration loading and validation for covcode.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nedbat/covcode/internal/coverdata"
)

// Sentinel validation errors.
var (
	ErrInvalidPrecision = errors.New("precision must be between 0 and 6")
	ErrInvalidFailUnder = errors.New("fail_under must be between 0 and 100")
)

// Default configuration values.
const (
	DefaultHTMLDir   = "htmlcov"
	DefaultTitle     = "Coverage report"
	defaultPrecision = 0
	maxPrecision     = 6
	maxPercent       = 100
)

// Config holds all configuration for covcode.
type Config struct {
	DataFile string       `mapstructure:"data_file" yaml:"data_file"`
	Source   string       `mapstructure:"source" yaml:"source"`
	Report   ReportConfig `mapstructure:"report" yaml:"report"`
	HTML     HTMLConfig   `mapstructure:"html" yaml:"html"`
	Logging  LogConfig    `mapstructure:"logging" yaml:"logging"`
}

// ReportConfig holds settings shared by every report command.
type ReportConfig struct {
	Include      []string `mapstructure:"include" yaml:"include"`
	Omit         []string `mapstructure:"omit" yaml:"omit"`
	ExcludeLines []string `mapstructure:"exclude_lines" yaml:"exclude_lines"`
	Contexts     []string `mapstructure:"contexts" yaml:"contexts"`
	Precision    int      `mapstructure:"precision" yaml:"precision"`
	FailUnder    float64  `mapstructure:"fail_under" yaml:"fail_under"`
	SkipCovered  bool     `mapstructure:"skip_covered" yaml:"skip_covered"`
	SkipEmpty    bool     `mapstructure:"skip_empty" yaml:"skip_empty"`
	ShowMissing  bool     `mapstructure:"show_missing" yaml:"show_missing"`
	IgnoreErrors bool     `mapstructure:"ignore_errors" yaml:"ignore_errors"`
}

// HTMLConfig holds settings specific to the HTML report.
type HTMLConfig struct {
	Dir          string `mapstructure:"dir" yaml:"dir"`
	Title        string `mapstructure:"title" yaml:"title"`
	ShowContexts bool   `mapstructure:"show_contexts" yaml:"show_contexts"`
}

// LogConfig holds logging-specific configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Load reads configuration from file and environment variables. An empty
// configPath searches the working directory for .covcode.yaml; a missing
// file just yields the defaults.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".covcode")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
	}

	viperCfg.SetEnvPrefix("COVCODE")
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

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("data_file", coverdata.DefaultDataFile)
	viperCfg.SetDefault("source", "")

	viperCfg.SetDefault("report.precision", defaultPrecision)
	viperCfg.SetDefault("report.fail_under", 0)
	viperCfg.SetDefault("report.exclude_lines", []string{coverdata.DefaultExcludePattern})

	viperCfg.SetDefault("html.dir", DefaultHTMLDir)
	viperCfg.SetDefault("html.title", DefaultTitle)

	viperCfg.SetDefault("logging.level", "warn")
	viperCfg.SetDefault("logging.format", "text")
}

// validate checks the configuration values.
func validate(config *Config) error {
	if config.Report.Precision < 0 || config.Report.Precision > maxPrecision {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, config.Report.Precision)
	}

	if config.Report.FailUnder < 0 || config.Report.FailUnder > maxPercent {
		return fmt.Errorf("%w: %v", ErrInvalidFailUnder, config.Report.FailUnder)
	}

	return nil
}
