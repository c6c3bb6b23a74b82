package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/nikit/internal/cmd/config"
	"github.com/Iron-Ham/nikit/internal/config"
	"github.com/Iron-Ham/nikit/internal/fsutil"
	"github.com/Iron-Ham/nikit/internal/invariant"
	"github.com/Iron-Ham/nikit/internal/logging"
	"github.com/Iron-Ham/nikit/internal/styles"
)

var rootCmd = &cobra.Command{
	Use:   "nikit",
	Short: "Helpers for package-manager runner scripts",
	Long: `nikit bundles the small helpers a package-manager runner needs:
safe atomic file writes, executable lookup, the optional Volta runtime
prefix, and width-limited output.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupEnv,
	PersistentPostRunE: teardownEnv,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// Wrapper for os.Exit to allow testing
var osExit = os.Exit

// env is the per-invocation state built from the loaded configuration.
var env struct {
	cfg    *config.Config
	logger *logging.Logger
	writer *fsutil.SafeWriter
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/nikit/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	configcmd.Register(rootCmd, func() *logging.Logger { return env.logger })
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("NIKIT")
	// e.g. NIKIT_OUTPUT_MAX_WIDTH for output.max_width
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func setupEnv(cmd *cobra.Command, args []string) error {
	// PersistentPostRunE is skipped when a command fails.
	if env.logger != nil {
		_ = env.logger.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	colorMode := cfg.Output.Color
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		colorMode = styles.ColorNever
	}
	styles.ConfigureColor(colorMode, os.Stdout.Fd())

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger = logger.WithCommand(cmd.Name())

	env.cfg = cfg
	env.logger = logger
	env.writer = fsutil.NewSafeWriter(
		fsutil.WithTempDir(cfg.Temp.ResolveDir(fsutil.TempDir())),
		fsutil.WithLogger(logger),
	)
	return nil
}

func teardownEnv(cmd *cobra.Command, args []string) error {
	if env.logger == nil {
		return nil
	}
	err := env.logger.Close()
	env.logger = nil
	return err
}

// check ends the process through invariant when ok is false.
func check(cmd *cobra.Command, ok bool, message string) {
	invariant.Exiter{Stderr: cmd.ErrOrStderr(), Exit: osExit}.Check(ok, message)
}
