package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/nikit/internal/errors"
	"github.com/Iron-Ham/nikit/internal/styles"
	"github.com/Iron-Ham/nikit/internal/toolchain"
	"github.com/Iron-Ham/nikit/internal/util"
)

var whichCmd = &cobra.Command{
	Use:   "which <name>...",
	Short: "Check whether executables are installed",
	Long: `Look up each <name> on PATH and print where it was found.

Exits with status 1 when any name cannot be resolved.

Examples:
  nikit which pnpm
  nikit which npm yarn bun`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWhich,
}

func init() {
	rootCmd.AddCommand(whichCmd)
}

func runWhich(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	maxWidth := env.cfg.Output.MaxWidth

	names := util.Exclude(args, "")
	if len(names) == 0 {
		return errors.NewValidationError("no command names given").WithField("name")
	}

	var missing []string
	for _, name := range names {
		path, err := toolchain.Resolve(name)
		if err != nil {
			env.logger.Debug("command not found", "name", name, "error", err.Error())
			missing = append(missing, name)
			fmt.Fprintln(out, fitWidth(styles.Error.Render("✗ "+name+": not found"), maxWidth))
			continue
		}
		fmt.Fprintln(out, fitWidth(styles.Secondary.Render("✓ "+name)+" "+styles.Muted.Render(path), maxWidth))
	}

	check(cmd, len(missing) == 0, fmt.Sprintf("nikit: %d of %d commands not found", len(missing), len(names)))
	return nil
}

// fitWidth cuts s to maxWidth columns; zero means no limit.
func fitWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}
	return util.LimitWidth(s, maxWidth)
}
