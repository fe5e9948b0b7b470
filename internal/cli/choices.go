// internal/cli/choices.go
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shuttlestats/courtscrape/internal/resolve"
	"github.com/shuttlestats/courtscrape/pkg/models"
)

var choicesOutput string

// choicesCmd represents the choices command
var choicesCmd = &cobra.Command{
	Use:   "choices",
	Short: "List the ranking categories and weeks the site currently offers",
	Long: `Opens the world ranking page and reads both dropdowns without
scraping any table, so operators can see which scopes are available
before committing to a long rankings run.`,
	Example: `  # Print available scopes as JSON
  courtscrape choices

  # Save them for scripting
  courtscrape choices --save choices.json`,
	Args: cobra.NoArgs,
	RunE: runChoices,
}

func init() {
	rootCmd.AddCommand(choicesCmd)

	choicesCmd.Flags().StringVar(&choicesOutput, "save", "", "File path to save the choices JSON")
}

func runChoices(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	ctx := cmd.Context()

	sess, err := a.EnsureSession(ctx)
	if err != nil {
		return err
	}

	page, err := sess.Prepare(ctx, rankingsURL(a.Config.BaseURL), a.Config.Dwell)
	if err != nil {
		return err
	}

	if err := resolve.OpenDropdown(ctx, page, resolve.RoleRankingSelect); err != nil {
		return err
	}
	categories, err := resolve.ListOptions(ctx, page)
	if err != nil {
		return err
	}
	if err := resolve.CloseDropdown(ctx, page); err != nil {
		return err
	}

	if err := resolve.OpenDropdown(ctx, page, resolve.RoleWeekSelect); err != nil {
		return err
	}
	weekOpts, err := resolve.ListOptions(ctx, page)
	if err != nil {
		return err
	}
	if err := resolve.CloseDropdown(ctx, page); err != nil {
		return err
	}

	choices := models.RankingChoices{
		Categories: categories,
		Weeks:      resolve.WeekOptions(weekOpts),
	}

	content, err := json.MarshalIndent(choices, "", "  ")
	if err != nil {
		return err
	}

	if choicesOutput != "" {
		return os.WriteFile(choicesOutput, content, 0644)
	}
	fmt.Println(string(content))
	return nil
}
