package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/nikit/internal/errors"
	"github.com/Iron-Ham/nikit/internal/util"
)

var truncateCmd = &cobra.Command{
	Use:   "truncate <text>",
	Short: "Shorten text to a maximum width",
	Long: `Print <text>, cut to --width characters with a dimmed "…" marker.

Without --width the output.max_width config value is used; if that is 0
the text is printed unchanged.

Examples:
  nikit truncate "a very long script name" --width 10`,
	Args: cobra.ExactArgs(1),
	RunE: runTruncate,
}

var truncateWidth int

func init() {
	truncateCmd.Flags().IntVarP(&truncateWidth, "width", "w", 0, "maximum number of characters")
	rootCmd.AddCommand(truncateCmd)
}

func runTruncate(cmd *cobra.Command, args []string) error {
	text := args[0]

	width := env.cfg.Output.MaxWidth
	if cmd.Flags().Changed("width") {
		if truncateWidth < 0 {
			return errors.NewValidationError("width must be non-negative").
				WithField("width").
				WithValue(truncateWidth)
		}
		width = truncateWidth
	} else if width == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), util.LimitText(text, width))
	return nil
}
