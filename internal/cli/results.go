// internal/cli/results.go
package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/shuttlestats/courtscrape/internal/app"
	"github.com/shuttlestats/courtscrape/internal/extract"
	"github.com/shuttlestats/courtscrape/internal/resolve"
	"github.com/shuttlestats/courtscrape/internal/ui"
	"github.com/shuttlestats/courtscrape/internal/utils/output"
	urlutil "github.com/shuttlestats/courtscrape/internal/utils/url"
	"github.com/shuttlestats/courtscrape/pkg/models"
)

var (
	resultsAll  bool
	resultsYear int
)

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results [url]",
	Short: "Scrape match results from a tournament page",
	Long: `Opens a tournament results page in list view, walks every day tab
the page offers, and extracts each day's match cards into one JSON batch
per tournament.

With --all the tournament URLs are taken from the most recent calendar
batch instead of the command line.`,
	Example: `  # Scrape one tournament
  courtscrape results https://bwfbadminton.com/results/4732/some-open/

  # Scrape every tournament from the latest calendar batch
  courtscrape results --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().BoolVar(&resultsAll, "all", false, "Scrape every tournament from the latest calendar batch")
	resultsCmd.Flags().IntVar(&resultsYear, "year", 0, "Year the scraped dates belong to (default: current year)")
}

func runResults(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	if !resultsAll && len(args) == 0 {
		return fmt.Errorf("provide a results URL or --all")
	}

	year := resultsYear
	if year == 0 {
		year = time.Now().Year()
	}

	var urls []string
	if resultsAll {
		var err error
		urls, err = tournamentURLs(a)
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			return fmt.Errorf("latest calendar batch has no tournaments with results pages")
		}
		log.Info().Int("tournaments", len(urls)).Msg("Scraping results for calendar batch")
	} else {
		if err := urlutil.ValidateURL(args[0]); err != nil {
			return err
		}
		urls = args[:1]
	}

	failures := 0
	for _, url := range urls {
		matches, err := scrapeTournament(cmd, a, url, year)
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("Tournament scrape failed")
			failures++
			continue
		}

		batch := &models.Batch{
			Kind:      models.KindMatch,
			ScrapedAt: time.Now(),
			SourceURL: url,
			Matches:   matches,
		}
		if _, err := saveBatch(a, batch); err != nil {
			return err
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d tournaments failed", failures, len(urls))
	}
	return nil
}

// tournamentURLs reads the most recent calendar batch and returns the
// results URL of every tournament that has one.
func tournamentURLs(a *app.Application) ([]string, error) {
	path, err := output.Latest(a.Config.OutputDir, models.KindTournament)
	if err != nil {
		return nil, fmt.Errorf("no calendar batch found, run `courtscrape calendar` first: %w", err)
	}
	batch, err := output.ReadBatch(path)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, t := range batch.Tournaments {
		if t.URL != "" {
			urls = append(urls, t.URL)
		}
	}
	return urls, nil
}

// scrapeTournament walks a tournament's day tabs and collects every match
// card. The landing page itself counts as day one; the remaining days come
// from the schedule tab links.
func scrapeTournament(cmd *cobra.Command, a *app.Application, url string, year int) ([]models.MatchRecord, error) {
	ctx := cmd.Context()

	sess, err := a.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}

	page, err := sess.Prepare(ctx, url, a.Config.Dwell)
	if err != nil {
		return nil, err
	}
	if _, err := resolve.SwitchListView(ctx, page); err != nil {
		return nil, err
	}
	if _, err := resolve.WaitAny(ctx, page, resolve.RoleMatchCards); err != nil {
		return nil, err
	}

	doc, err := page.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := extract.Matches(doc, "")
	if err != nil {
		return nil, extract.Attach(err, page.SaveHTML(ctx, "extract_results"))
	}
	stampYear(matches, year)

	links, err := extract.ScheduleLinks(doc, url)
	if err != nil {
		log.Debug().Err(err).Msg("No schedule tabs found, single-day tournament")
		return matches, nil
	}

	bar := progressbar.NewOptions(len(links),
		progressbar.OptionSetDescription("days"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	for _, link := range links {
		if link.URL == url {
			_ = bar.Add(1)
			continue
		}

		dayPage, err := sess.Prepare(ctx, link.URL, a.Config.Dwell)
		if err != nil {
			return nil, fmt.Errorf("day %q: %w", link.Label, err)
		}
		if _, err := resolve.SwitchListView(ctx, dayPage); err != nil {
			return nil, err
		}
		if _, err := resolve.WaitAny(ctx, dayPage, resolve.RoleMatchCards); err != nil {
			return nil, fmt.Errorf("day %q: %w", link.Label, err)
		}

		dayDoc, err := dayPage.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		dayMatches, err := extract.Matches(dayDoc, "")
		if err != nil {
			err = extract.Attach(err, dayPage.SaveHTML(ctx, "extract_results"))
			return nil, fmt.Errorf("day %q: %w", link.Label, err)
		}
		stampYear(dayMatches, year)
		matches = append(matches, dayMatches...)
		_ = bar.Add(1)
	}

	fmt.Printf("%s %s: %d matches across %d days\n",
		ui.Success("✓"), url, len(matches), len(links))
	return matches, nil
}

func stampYear(matches []models.MatchRecord, year int) {
	for i := range matches {
		matches[i].Year = year
	}
}
