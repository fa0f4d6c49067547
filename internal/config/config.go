package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"go_qoistream/internal/archive"
)

// Channel modes of CodecConfig.Alpha
const (
	AlphaAuto = "auto"
	AlphaRGB  = "rgb"
	AlphaRGBA = "rgba"
)

// Config holds the configuration of the command line tool
type Config struct {
	Codec   CodecConfig   `yaml:"codec"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	// Workers bounds the number of files converted at once.
	Workers int `yaml:"workers"`
}

// LoadOptions holds command-line override options. Empty strings, zero
// values and nil booleans leave the lower layers untouched.
type LoadOptions struct {
	ConfigFile string
	Alpha      string
	Linear     *bool
	OutDir     string
	Zstd       *bool
	ZstdLevel  string
	Overwrite  *bool
	LogLevel   string
	Workers    int
}

// CodecConfig holds encoder settings
type CodecConfig struct {
	Alpha  string `yaml:"alpha" env:"QOI_ALPHA" default:"auto"`
	Linear bool   `yaml:"linear" env:"QOI_LINEAR" default:"false"`
}

// OutputConfig holds settings for written files
type OutputConfig struct {
	Dir       string `yaml:"dir" env:"QOI_OUT_DIR" default:""`
	Zstd      bool   `yaml:"zstd" env:"QOI_ZSTD" default:"false"`
	ZstdLevel string `yaml:"zstdLevel" env:"QOI_ZSTD_LEVEL" default:"default"`
	Overwrite bool   `yaml:"overwrite" env:"QOI_OVERWRITE" default:"false"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" env:"QOI_LOG_LEVEL" default:"info"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Codec:   CodecConfig{Alpha: AlphaAuto},
		Output:  OutputConfig{ZstdLevel: "default"},
		Logging: LoggingConfig{Level: "info"},
		Workers: runtime.NumCPU(),
	}
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	return LoadWithOverrides(LoadOptions{})
}

// LoadWithOverrides loads the defaults, then the YAML config file, then
// environment variables and finally the command-line overrides.
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	config := Default()

	configFile := getOverrideOrEnv(opts.ConfigFile, "QOI_CONFIG", "")
	if configFile != "" {
		if err := config.loadFile(configFile); err != nil {
			return nil, err
		}
	}

	// Codec config
	config.Codec.Alpha = getOverrideOrEnv(opts.Alpha, "QOI_ALPHA", config.Codec.Alpha)
	config.Codec.Linear = getBoolOverrideOrEnv(opts.Linear, "QOI_LINEAR", config.Codec.Linear)

	// Output config
	config.Output.Dir = getOverrideOrEnv(opts.OutDir, "QOI_OUT_DIR", config.Output.Dir)
	config.Output.Zstd = getBoolOverrideOrEnv(opts.Zstd, "QOI_ZSTD", config.Output.Zstd)
	config.Output.ZstdLevel = getOverrideOrEnv(opts.ZstdLevel, "QOI_ZSTD_LEVEL", config.Output.ZstdLevel)
	config.Output.Overwrite = getBoolOverrideOrEnv(opts.Overwrite, "QOI_OVERWRITE", config.Output.Overwrite)

	// Logging config
	config.Logging.Level = getOverrideOrEnv(opts.LogLevel, "QOI_LOG_LEVEL", config.Logging.Level)

	config.Workers = getIntWithDefault("QOI_WORKERS", config.Workers)
	if opts.Workers != 0 {
		config.Workers = opts.Workers
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Codec.Alpha {
	case AlphaAuto, AlphaRGB, AlphaRGBA:
	default:
		return fmt.Errorf("invalid alpha mode: %s", c.Codec.Alpha)
	}

	if _, err := archive.ParseLevel(c.Output.ZstdLevel); err != nil {
		return err
	}

	if c.Output.Dir != "" {
		if info, err := os.Stat(c.Output.Dir); err != nil {
			return fmt.Errorf("output directory: %w", err)
		} else if !info.IsDir() {
			return fmt.Errorf("output directory is not a directory: %s", c.Output.Dir)
		}
	}

	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getOverrideOrEnv returns command-line override value, env value, or default
func getOverrideOrEnv(override, envKey, defaultValue string) string {
	if override != "" {
		return override
	}
	return getEnvWithDefault(envKey, defaultValue)
}

// getBoolOverrideOrEnv is getOverrideOrEnv for flags that may be given as
// false explicitly.
func getBoolOverrideOrEnv(override *bool, envKey string, defaultValue bool) bool {
	if override != nil {
		return *override
	}
	return getBoolWithDefault(envKey, defaultValue)
}
