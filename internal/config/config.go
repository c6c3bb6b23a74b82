package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete nikit configuration
type Config struct {
	Temp    TempConfig    `mapstructure:"temp" yaml:"temp"`
	Runtime RuntimeConfig `mapstructure:"runtime" yaml:"runtime"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// TempConfig controls where safe writes stage their content
type TempConfig struct {
	// Dir overrides the shared temp directory.
	// If empty, defaults to "<system temp>/antfu-ni".
	// Supports ~ for home directory expansion.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// RuntimeConfig describes the optional runtime manager probed by `nikit prefix`
type RuntimeConfig struct {
	// Manager is the executable to look for (default: "volta")
	Manager string `mapstructure:"manager" yaml:"manager"`
	// Prefix is printed when Manager is installed (default: "volta run")
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// OutputConfig controls terminal output
type OutputConfig struct {
	// MaxWidth limits printed values before they are cut with an ellipsis (0 = no limit)
	MaxWidth int `mapstructure:"max_width" yaml:"max_width"`
	// Color is one of "auto", "always", "never" (default: "auto")
	Color string `mapstructure:"color" yaml:"color"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "warn")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory for nikit.log. If empty, logs go to stderr.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// ResolveDir returns the temp directory to use.
// If Dir is empty, defaultDir is returned. A leading ~ expands to the home directory.
func (t *TempConfig) ResolveDir(defaultDir string) string {
	if t.Dir == "" {
		return defaultDir
	}
	return expandHome(t.Dir)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Temp: TempConfig{
			Dir: "", // Empty means use <system temp>/antfu-ni
		},
		Runtime: RuntimeConfig{
			Manager: "volta",
			Prefix:  "volta run",
		},
		Output: OutputConfig{
			MaxWidth: 0,
			Color:    "auto",
		},
		Logging: LoggingConfig{
			Level: "warn", // Keep normal command output free of log records
			Dir:   "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("temp.dir", defaults.Temp.Dir)

	viper.SetDefault("runtime.manager", defaults.Runtime.Manager)
	viper.SetDefault("runtime.prefix", defaults.Runtime.Prefix)

	viper.SetDefault("output.max_width", defaults.Output.MaxWidth)
	viper.SetDefault("output.color", defaults.Output.Color)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if it cannot be loaded
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nikit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nikit"
	}
	return filepath.Join(home, ".config", "nikit")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
