// Package config provides CLI commands for managing nikit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/nikit/internal/config"
	"github.com/Iron-Ham/nikit/internal/fsutil"
	"github.com/Iron-Ham/nikit/internal/logging"
	"github.com/Iron-Ham/nikit/internal/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify nikit configuration",
	Long: `View or modify nikit configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  nikit config set output.max_width 80
  nikit config set runtime.manager volta

Valid keys:
  temp.dir          - Directory used to stage safe writes
  runtime.manager   - Executable probed by 'nikit prefix'
  runtime.prefix    - Prefix printed when the manager is installed
  output.max_width  - Cut printed values at this width (0 = no limit)
  output.color      - Color mode: auto, always, never
  logging.level     - Log level: debug, info, warn, error
  logging.dir       - Directory for nikit.log (empty = stderr)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/nikit/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var initForce bool

// loggerFunc supplies the command logger once the root command has set it up.
var loggerFunc = logging.NopLogger

func init() {
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	// Stop flag parsing at <key> so negative values reach validation.
	configSetCmd.Flags().SetInterspersed(false)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// Register adds all config-related commands to the given parent command.
// logger is called at run time for the logger config writes report to;
// nil keeps them silent.
func Register(parent *cobra.Command, logger func() *logging.Logger) {
	if logger != nil {
		loggerFunc = logger
	}
	parent.AddCommand(configCmd)
}

// settableKeys maps each key accepted by 'config set' to its value kind.
var settableKeys = map[string]string{
	"temp.dir":         "string",
	"runtime.manager":  "string",
	"runtime.prefix":   "string",
	"output.max_width": "int",
	"output.color":     "color",
	"logging.level":    "level",
	"logging.dir":      "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := appconfig.Get()
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'nikit config set --help' to see valid keys", key)
	}

	var typedValue any
	switch keyType {
	case "string":
		typedValue = value
	case "color":
		if !slices.Contains(styles.ValidColorModes(), value) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(styles.ValidColorModes(), ", "))
		}
		typedValue = value
	case "level":
		if !slices.Contains(appconfig.ValidLogLevels(), strings.ToLower(value)) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		typedValue = strings.ToLower(value)
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	}

	viper.Set(key, typedValue)
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}

	configFile := appconfig.ConfigFile()
	if err := writeConfig(cfg, configFile); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file already exists at %s\nUse 'nikit config set' to modify values or --force to overwrite", configFile)
	}

	if err := writeConfig(appconfig.Default(), configFile); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: NIKIT_* (e.g., NIKIT_OUTPUT_MAX_WIDTH)")
	return nil
}

// writeConfig replaces path with cfg encoded as YAML.
func writeConfig(cfg *appconfig.Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	logger := loggerFunc()
	if logger == nil {
		logger = logging.NopLogger()
	}
	w := fsutil.NewSafeWriter(
		fsutil.WithTempDir(cfg.Temp.ResolveDir(fsutil.TempDir())),
		fsutil.WithLogger(logger),
	)
	if err := w.Write(path, append([]byte("# nikit configuration\n"), data...)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
