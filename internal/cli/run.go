// internal/cli/run.go
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shuttlestats/courtscrape/internal/ui"
	"github.com/shuttlestats/courtscrape/internal/utils/output"
)

var (
	runSkipResults  bool
	runSkipRankings bool
	runNoPersist    bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape calendar, results and rankings, then persist everything",
	Long: `The full pipeline in one invocation: rotates the previous output
directory aside, scrapes the tournament calendar, every tournament's
results and the latest ranking tables, then upserts all batches into
the store.`,
	Example: `  # Full pipeline
  courtscrape run

  # Refresh rankings only, keep batches on disk
  courtscrape run --skip-results --no-persist`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runSkipResults, "skip-results", false, "Skip the per-tournament results stage")
	runCmd.Flags().BoolVar(&runSkipRankings, "skip-rankings", false, "Skip the rankings stage")
	runCmd.Flags().BoolVar(&runNoPersist, "no-persist", false, "Leave batches on disk without writing to the store")
}

func runRun(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	if err := output.Rotate(a.Config.OutputDir); err != nil {
		return fmt.Errorf("rotate output dir: %w", err)
	}

	fmt.Printf("%s calendar\n", ui.Bold("Stage 1:"))
	if err := runCalendar(cmd, nil); err != nil {
		return fmt.Errorf("calendar stage: %w", err)
	}

	if !runSkipResults {
		fmt.Printf("%s results\n", ui.Bold("Stage 2:"))
		resultsAll = true
		if err := runResults(cmd, nil); err != nil {
			// Results of in-progress tournaments fail routinely; the rest
			// of the pipeline is still worth running.
			log.Error().Err(err).Msg("Results stage incomplete")
		}
	}

	if !runSkipRankings {
		fmt.Printf("%s rankings\n", ui.Bold("Stage 3:"))
		if err := runRankings(cmd, nil); err != nil {
			return fmt.Errorf("rankings stage: %w", err)
		}
	}

	if runNoPersist {
		fmt.Printf("%s batches left in %s\n", ui.Bold("Done:"), a.Config.OutputDir)
		return nil
	}

	fmt.Printf("%s persist\n", ui.Bold("Stage 4:"))
	return runPersist(cmd, []string{filepath.Join(a.Config.OutputDir, "*.json")})
}
