package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/nikit/internal/toolchain"
)

var prefixCmd = &cobra.Command{
	Use:   "prefix",
	Short: "Print the runtime manager prefix",
	Long: `Print the prefix to put in front of package-manager commands.

Prints "volta run" when Volta is installed and nothing otherwise. The
manager and prefix can be changed with the runtime.manager and
runtime.prefix config keys.`,
	Args: cobra.NoArgs,
	RunE: runPrefix,
}

func init() {
	rootCmd.AddCommand(prefixCmd)
}

func runPrefix(cmd *cobra.Command, args []string) error {
	manager := toolchain.Manager{
		Command: env.cfg.Runtime.Manager,
		Prefix:  env.cfg.Runtime.Prefix,
	}
	prefix := manager.ActivePrefix()
	env.logger.Debug("resolved runtime prefix", "manager", manager.Command, "prefix", prefix)

	fmt.Fprintln(cmd.OutOrStdout(), prefix)
	return nil
}
