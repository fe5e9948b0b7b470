// internal/cli/persist.go
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shuttlestats/courtscrape/internal/sink"
	"github.com/shuttlestats/courtscrape/internal/ui"
)

// persistCmd represents the persist command
var persistCmd = &cobra.Command{
	Use:   "persist [glob]",
	Short: "Upsert scraped JSON batches into the store",
	Long: `Shapes every record of the matching batch files and upserts the
survivors into the store. Records that fail validation are skipped and
reported; a file whose records all fail counts as a failed file, but the
run continues past it.`,
	Example: `  # Persist everything in the output directory
  courtscrape persist

  # Persist only ranking batches
  courtscrape persist "output/ranking_*.json"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPersist,
}

func init() {
	rootCmd.AddCommand(persistCmd)
}

func runPersist(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	ctx := cmd.Context()

	pattern := filepath.Join(a.Config.OutputDir, "*.json")
	if len(args) == 1 {
		pattern = args[0]
	}

	store, err := a.EnsureStore(ctx)
	if err != nil {
		return err
	}

	summary, err := store.ProcessGlob(ctx, pattern)
	if err != nil {
		return err
	}
	printSummary(summary)

	failed := 0
	for _, f := range summary.Files {
		if f.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files produced no rows", failed, len(summary.Files))
	}
	return nil
}

func printSummary(sum sink.RunSummary) {
	fmt.Println()
	for _, f := range sum.Files {
		mark := ui.Success("✓")
		if f.Failed() {
			mark = ui.Error("✗")
		}
		fmt.Printf("  %s %s  %sinserted %d, skipped %d, errors %d%s\n",
			mark, filepath.Base(f.Path),
			ui.ColorDim, f.Inserted, f.Skipped, len(f.Errors), ui.ColorReset)
	}
	fmt.Printf("\n%s %d rows upserted, %d skipped, %d errors across %d files\n",
		ui.Bold("Done:"), sum.Inserted, sum.Skipped, len(sum.Errors), len(sum.Files))
}
