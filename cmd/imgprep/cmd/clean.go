package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veritas-tools/imgprep/internal/artifact"
)

// cleanCmd removes leftover temp artifacts from earlier runs.
var cleanCmd = &cobra.Command{
	Use:   "clean [directories...]",
	Short: "Remove leftover enhancement artifacts",
	Long: `Remove temp_* artifact files left behind in the given directories,
for example after a crashed run or after --keep. Source images are never
touched; only files matching the pipeline's artifact naming templates are
removed.

Examples:
  imgprep clean .
  imgprep clean scans/ /tmp/ocr`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runCleanCommand,
}

func runCleanCommand(cmd *cobra.Command, args []string) error {
	total := 0
	for _, dir := range args {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		removed, err := artifact.CleanDir(dir)
		if err != nil {
			return fmt.Errorf("cleaning %s: %w", dir, err)
		}
		total += removed
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d artifact(s)\n", total)
	return nil
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
