// internal/cli/rankings.go
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/shuttlestats/courtscrape/internal/browser"
	"github.com/shuttlestats/courtscrape/internal/config"
	"github.com/shuttlestats/courtscrape/internal/extract"
	"github.com/shuttlestats/courtscrape/internal/resolve"
	"github.com/shuttlestats/courtscrape/pkg/models"
)

// events are the five discipline tabs of the ranking page, in tab order.
var events = []string{
	"MEN'S SINGLES",
	"WOMEN'S SINGLES",
	"MEN'S DOUBLES",
	"WOMEN'S DOUBLES",
	"MIXED DOUBLES",
}

var (
	rankingCategory string
	rankingWeeks    int
)

// rankingsCmd represents the rankings command
var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Scrape world ranking tables into a JSON batch",
	Long: `Opens the world ranking page, picks a ranking category, and walks
the requested number of publication weeks across all five discipline
tabs. Every row is tagged with the category, event and the week label
that was actually selected, so a missing week falls back to the newest
one without mislabeling the data.`,
	Example: `  # Latest week of the default category, all five events
  courtscrape rankings

  # Four most recent weeks of the world tour rankings
  courtscrape rankings --category "BWF World Tour Rankings" --weeks 4`,
	Args: cobra.NoArgs,
	RunE: runRankings,
}

func init() {
	rootCmd.AddCommand(rankingsCmd)

	rankingsCmd.Flags().StringVar(&rankingCategory, "category", "BWF World Rankings", "Ranking category to scrape")
	rankingsCmd.Flags().IntVar(&rankingWeeks, "weeks", 1, "How many most-recent publication weeks to scrape")
}

func runRankings(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	ctx := cmd.Context()

	sess, err := a.EnsureSession(ctx)
	if err != nil {
		return err
	}

	url := rankingsURL(a.Config.BaseURL)
	log.Info().Str("url", url).Str("category", rankingCategory).Int("weeks", rankingWeeks).Msg("Scraping rankings")

	page, err := sess.Prepare(ctx, url, a.Config.Dwell)
	if err != nil {
		return err
	}

	// The category choice is the one selection that must not silently
	// drift: scraping the wrong table is worse than failing.
	if err := resolve.OpenDropdown(ctx, page, resolve.RoleRankingSelect); err != nil {
		return err
	}
	category, err := resolve.SelectOption(ctx, page, rankingCategory, resolve.Strict)
	if err != nil {
		return err
	}
	if err := settle(ctx, 2*time.Second); err != nil {
		return err
	}

	if err := setPerPage(ctx, page); err != nil {
		return err
	}

	weeks, err := weekLabels(ctx, page, rankingWeeks)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(weeks)*len(events),
		progressbar.OptionSetDescription("tables"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	var rows []models.RankingRow
	for _, week := range weeks {
		if err := resolve.OpenDropdown(ctx, page, resolve.RoleWeekSelect); err != nil {
			return err
		}
		// Older weeks fall off the dropdown; report whichever label we
		// actually landed on instead of the one we asked for.
		actual, err := resolve.SelectOption(ctx, page, week, resolve.FallbackFirst)
		if err != nil {
			return err
		}
		if actual != week {
			log.Warn().Str("wanted", week).Str("got", actual).Msg("Week unavailable, using fallback")
		}
		if err := settle(ctx, 2*time.Second); err != nil {
			return err
		}

		for _, event := range events {
			tableRows, err := scrapeRankingTable(ctx, page, category, event, actual)
			if err != nil {
				return fmt.Errorf("%s / %s: %w", actual, event, err)
			}
			rows = append(rows, tableRows...)
			_ = bar.Add(1)
		}
	}

	batch := &models.Batch{
		Kind:      models.KindRanking,
		ScrapedAt: time.Now(),
		SourceURL: url,
		Rankings:  rows,
	}
	_, err = saveBatch(a, batch)
	return err
}

// setPerPage widens the table to its largest page size so one snapshot
// covers the whole top-100.
func setPerPage(ctx context.Context, page *browser.Page) error {
	if err := resolve.OpenDropdown(ctx, page, resolve.RolePerPageSelect); err != nil {
		log.Warn().Err(err).Msg("Per-page dropdown unavailable, keeping site default")
		return nil
	}
	chosen, err := resolve.SelectOption(ctx, page, config.DefaultPerPage, resolve.Strict)
	if err != nil {
		log.Warn().Err(err).Msg("Per-page option unavailable, keeping site default")
		if cerr := resolve.CloseDropdown(ctx, page); cerr != nil {
			return cerr
		}
		return nil
	}
	log.Debug().Str("per_page", chosen).Msg("Page size selected")
	return settle(ctx, 2*time.Second)
}

// weekLabels reads the week dropdown and returns the n newest week labels.
func weekLabels(ctx context.Context, page *browser.Page, n int) ([]string, error) {
	if err := resolve.OpenDropdown(ctx, page, resolve.RoleWeekSelect); err != nil {
		return nil, err
	}
	opts, err := resolve.ListOptions(ctx, page)
	if err != nil {
		return nil, err
	}
	if err := resolve.CloseDropdown(ctx, page); err != nil {
		return nil, err
	}

	weeks := resolve.WeekOptions(opts)
	if len(weeks) == 0 {
		return nil, fmt.Errorf("week dropdown has no week options (saw %v)", opts)
	}
	if n < len(weeks) {
		weeks = weeks[:n]
	}
	return weeks, nil
}

func scrapeRankingTable(ctx context.Context, page *browser.Page, category, event, week string) ([]models.RankingRow, error) {
	if err := resolve.SelectEvent(ctx, page, event); err != nil {
		return nil, err
	}
	if err := settle(ctx, 2*time.Second); err != nil {
		return nil, err
	}
	if _, err := resolve.WaitAny(ctx, page, resolve.RoleRankingTable); err != nil {
		return nil, err
	}

	doc, err := page.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := extract.Rankings(doc, category, event, week)
	if err != nil {
		return nil, extract.Attach(err, page.SaveHTML(ctx, "extract_rankings"))
	}
	return rows, nil
}

// settle waits out a client-side re-render that has no reliable completion
// signal.
func settle(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
