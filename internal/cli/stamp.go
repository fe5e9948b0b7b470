// internal/cli/stamp.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shuttlestats/courtscrape/internal/ui"
	"github.com/shuttlestats/courtscrape/internal/utils/output"
)

// stampCmd represents the stamp command
var stampCmd = &cobra.Command{
	Use:   "stamp <file>",
	Short: "Renumber the id fields of a JSON array file",
	Long: `Rewrites the "id" field of every object in a JSON array file with
evenly spaced values (10, 20, 30, ...) so rows can be reordered by hand
and re-stamped afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runStamp,
}

func init() {
	rootCmd.AddCommand(stampCmd)
}

func runStamp(cmd *cobra.Command, args []string) error {
	if err := output.StampIDs(args[0]); err != nil {
		return err
	}
	fmt.Printf("%s re-stamped %s\n", ui.Success("✓"), args[0])
	return nil
}
