// internal/cli/calendar.go
package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shuttlestats/courtscrape/internal/extract"
	"github.com/shuttlestats/courtscrape/internal/resolve"
	"github.com/shuttlestats/courtscrape/pkg/models"
)

var calendarYear int

// calendarCmd represents the calendar command
var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Scrape the tournament calendar into a JSON batch",
	Long: `Navigates to the tournament calendar, waits out the page's slow
hydration, and extracts every tournament card with its month folded in
from the preceding month header.`,
	Example: `  # Scrape the calendar for the current year
  courtscrape calendar

  # Scrape with an explicit year for date stamping
  courtscrape calendar --year 2025`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)

	calendarCmd.Flags().IntVar(&calendarYear, "year", 0, "Year the scraped dates belong to (default: current year)")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	ctx := cmd.Context()

	year := calendarYear
	if year == 0 {
		year = time.Now().Year()
	}

	sess, err := a.EnsureSession(ctx)
	if err != nil {
		return err
	}

	url := calendarURL(a.Config.BaseURL)
	log.Info().Str("url", url).Int("year", year).Msg("Scraping tournament calendar")

	// The calendar hydrates noticeably slower than the other pages.
	page, err := sess.Prepare(ctx, url, a.Config.CalendarDwell)
	if err != nil {
		return err
	}

	if _, err := resolve.WaitAny(ctx, page, resolve.RoleCalendarCards); err != nil {
		return err
	}

	doc, err := page.Snapshot(ctx)
	if err != nil {
		return err
	}

	entries, err := extract.Calendar(doc, year)
	if err != nil {
		return extract.Attach(err, page.SaveHTML(ctx, "extract_calendar"))
	}

	batch := &models.Batch{
		Kind:        models.KindTournament,
		ScrapedAt:   time.Now(),
		SourceURL:   url,
		Tournaments: entries,
	}
	_, err = saveBatch(a, batch)
	return err
}
