// Package config loads cfptrace settings from defaults, an optional config
// file and CFPTRACE_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "cfptrace"
	// EnvPrefix prefixes environment overrides, e.g. CFPTRACE_OUTPUT_FORMAT.
	EnvPrefix = "CFPTRACE"
)

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json", "csv", "xlsx"}
)

// Config is the full cfptrace configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log" json:"log"`
	Output  OutputConfig  `mapstructure:"output" json:"output"`
	Display DisplayConfig `mapstructure:"display" json:"display"`
	Limits  LimitsConfig  `mapstructure:"limits" json:"limits"`
}

type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" json:"format"`
	Dir    string `mapstructure:"dir" json:"dir"`
}

// DisplayConfig controls how emission values are rendered for people.
// Aggregated results keep full precision regardless.
type DisplayConfig struct {
	Precision int32 `mapstructure:"precision" json:"precision"`
}

type LimitsConfig struct {
	MaxChildren int `mapstructure:"max_children" json:"max_children"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Output:  OutputConfig{Format: "text"},
		Display: DisplayConfig{Precision: 1},
		Limits:  LimitsConfig{MaxChildren: 50},
	}
}

// Load reads configuration. When path is empty the file cfptrace.{toml,yaml,json}
// is searched in the working directory and the user config directory; a
// missing file is not an error. The returned string is the file that was
// used, or empty when only defaults and environment applied.
func Load(path string) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("display.precision", defaults.Display.Precision)
	v.SetDefault("limits.max_children", defaults.Limits.MaxChildren)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.AddConfigPath(".")
		if dir, err := userConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, v.ConfigFileUsed(), nil
}

// Validate rejects unknown levels and formats and non-positive limits.
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("invalid log level %q (expected one of %s)", c.Log.Level, strings.Join(validLevels, ", "))
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("invalid output format %q (expected one of %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}
	if c.Display.Precision < 0 {
		return fmt.Errorf("display precision cannot be negative, got %d", c.Display.Precision)
	}
	if c.Limits.MaxChildren <= 0 {
		return fmt.Errorf("max children must be positive, got %d", c.Limits.MaxChildren)
	}
	return nil
}

// userConfigDir returns $XDG_CONFIG_HOME/cfptrace, falling back to the
// platform user config directory.
func userConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}
