// Package extract reads typed records out of page snapshots. Every
// extractor takes a goquery document, so the same code serves a live DOM
// snapshot and a saved HTML file.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/pkg/models"
)

const (
	calendarCardSel  = "div.card.tmt-card"
	monthHeaderSel   = "div.month-header, h3.month-header"
	tournamentName   = "span.name.truncate-2-line"
	tournamentDates  = "span.date-post, span.date-live, span.date-future"
	tournamentPlace  = "div.country"
	tournamentLevel  = "div.label.label-category.truncate-1-line"
	tournamentPrize  = "div.label.prize-money"
	tournamentAlert  = "span.label.label-alert"
)

var headerYear = regexp.MustCompile(`\b(20\d{2})\b`)

// Calendar walks the tournament calendar in document order. Month headers
// and tournament cards are siblings; a card belongs to the most recent
// header above it, so a running month accumulator folds over the walk.
func Calendar(doc *goquery.Document, year int) ([]models.TournamentEntry, error) {
	var entries []models.TournamentEntry
	currentMonth := ""
	currentYear := year

	nodes := doc.Find(monthHeaderSel + ", " + calendarCardSel)
	if nodes.Length() == 0 {
		return nil, structuralMiss("calendar", "no month headers or tournament cards")
	}

	var bad error
	nodes.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Is(calendarCardSel) {
			entry, err := calendarCard(s, currentMonth, currentYear)
			if err != nil {
				bad = err
				return false
			}
			entries = append(entries, entry)
			return true
		}

		header := strings.TrimSpace(s.Text())
		fields := strings.Fields(header)
		if len(fields) == 0 {
			bad = structuralMiss("calendar", "empty month header")
			return false
		}
		currentMonth = fields[0]
		if m := headerYear.FindString(header); m != "" {
			if y, err := strconv.Atoi(m); err == nil {
				currentYear = y
			}
		}
		return true
	})
	if bad != nil {
		return nil, bad
	}

	log.Debug().Int("tournaments", len(entries)).Msg("Calendar extracted")
	return entries, nil
}

// splitLocation strips the trailing country from a location label like
// "Odense, Denmark", returning location and country.
func splitLocation(s string) (string, string) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return strings.TrimSpace(s), ""
	}
	country := strings.TrimSpace(parts[len(parts)-1])
	location := strings.TrimSpace(strings.Join(parts[:len(parts)-1], ","))
	return location, country
}

func calendarCard(s *goquery.Selection, month string, year int) (models.TournamentEntry, error) {
	if month == "" {
		return models.TournamentEntry{}, structuralMiss("calendar", "tournament card before any month header")
	}

	name := strings.TrimSpace(s.Find(tournamentName).First().Text())
	if name == "" {
		return models.TournamentEntry{}, structuralMiss("calendar", "card without tournament name")
	}

	location, country := splitLocation(strings.TrimSpace(s.Find(tournamentPlace).First().Text()))

	entry := models.TournamentEntry{
		Name:     name,
		Date:     strings.TrimSpace(s.Find(tournamentDates).First().Text()),
		Month:    month,
		Location: location,
		Country:  country,
		Category: strings.TrimSpace(s.Find(tournamentLevel).First().Text()),
		Prize:    strings.TrimSpace(s.Find(tournamentPrize).First().Text()),
		Status:   strings.TrimSpace(s.Find(tournamentAlert).First().Text()),
		Year:     year,
	}

	// The results link sits on an ancestor (or embedded) anchor.
	s.Closest("a").AddSelection(s.Find("a")).EachWithBreak(func(i int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if ok && strings.Contains(href, "/results/") {
			entry.URL = href
			return false
		}
		return true
	})

	return entry, nil
}
