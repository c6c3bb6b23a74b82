package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write <dest>",
	Short: "Atomically replace a file",
	Long: `Replace <dest> with new content so readers never see a partial file.

Content is read from --from, or from stdin when --from is not given. It is
staged in a private temp file under the shared temp directory and renamed
onto <dest> once fully written. On failure <dest> is left untouched and
nikit exits with status 1.

Examples:
  nikit write package.json --from package.json.new
  echo '{}' | nikit write .ni-cache.json`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

var writeFrom string

func init() {
	writeCmd.Flags().StringVar(&writeFrom, "from", "", "read content from this file instead of stdin")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	dest := args[0]

	data, err := readInput(cmd, writeFrom)
	if err != nil {
		return err
	}

	err = env.writer.Write(dest, data)
	if err != nil {
		env.logger.Error("write failed", "dest", dest, "error", err.Error())
		check(cmd, false, fmt.Sprintf("nikit: %v", err))
		return err
	}

	env.logger.Info("wrote file", "dest", dest, "bytes", len(data))
	return nil
}

func readInput(cmd *cobra.Command, from string) ([]byte, error) {
	if from == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(from)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", from, err)
	}
	return data, nil
}
