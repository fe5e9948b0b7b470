// internal/cli/cleanup.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shuttlestats/courtscrape/internal/ui"
	"github.com/shuttlestats/courtscrape/internal/utils/output"
)

var cleanupExt string

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete scraped batch files from the output directory",
	Example: `  # Remove all JSON batches
  courtscrape cleanup

  # Remove saved markdown snapshots instead
  courtscrape cleanup --ext .md`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().StringVar(&cleanupExt, "ext", ".json", "File extension to delete")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	n, err := output.DeleteByExt(a.Config.OutputDir, cleanupExt)
	if err != nil {
		return err
	}
	fmt.Printf("%s deleted %d %s files from %s\n", ui.Success("✓"), n, cleanupExt, a.Config.OutputDir)
	return nil
}
