// Package config provides configuration loading and validation for the
// texfang command line tool.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidStyle    = errors.New("invalid render style")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Default configuration values.
const (
	defaultStyle      = "function"
	defaultPinvSymbol = `\dagger`
)

// Config holds all configuration for the texfang tool.
type Config struct {
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RenderConfig holds rendering defaults. Command line flags override
// these values.
type RenderConfig struct {
	Style             string            `mapstructure:"style"`
	PinvSymbol        string            `mapstructure:"pinv_symbol"`
	Identifiers       map[string]string `mapstructure:"identifiers"`
	LatexOverrides    map[string]string `mapstructure:"latex_overrides"`
	Prefixes          []string          `mapstructure:"prefixes"`
	ExpandFunctions   []string          `mapstructure:"expand_functions"`
	UseMathSymbols    bool              `mapstructure:"use_math_symbols"`
	UseSetSymbols     bool              `mapstructure:"use_set_symbols"`
	UseMathrm         bool              `mapstructure:"use_mathrm"`
	UseSignature      bool              `mapstructure:"use_signature"`
	ReduceAssignments bool              `mapstructure:"reduce_assignments"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	// Set defaults.
	setDefaults(viperCfg)

	// Read config file.
	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/texfang")
	}

	// Read environment variables.
	viperCfg.SetEnvPrefix("TEXFANG")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file.
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

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Render defaults.
	viperCfg.SetDefault("render.style", defaultStyle)
	viperCfg.SetDefault("render.use_math_symbols", false)
	viperCfg.SetDefault("render.use_set_symbols", false)
	viperCfg.SetDefault("render.use_mathrm", true)
	viperCfg.SetDefault("render.use_signature", true)
	viperCfg.SetDefault("render.reduce_assignments", false)
	viperCfg.SetDefault("render.pinv_symbol", defaultPinvSymbol)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")
	viperCfg.SetDefault("logging.output", "stderr")
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	switch config.Render.Style {
	case "function", "expression", "algorithmic", "notebook":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStyle, config.Render.Style)
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, config.Logging.Level)
	}

	return nil
}
