package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/pkg/models"
)

// Rankings reads the world-ranking table currently on screen. The caller
// passes the scope it navigated to (category, event tab, week label) so
// every row is tagged with what was actually selected.
func Rankings(doc *goquery.Document, category, event, week string) ([]models.RankingRow, error) {
	rows := doc.Find("table tbody tr")
	if rows.Length() == 0 {
		rows = doc.Find("table tr").FilterFunction(func(i int, s *goquery.Selection) bool {
			return s.Find("td").Length() > 0
		})
	}
	if rows.Length() == 0 {
		return nil, structuralMiss("rankings", "no table rows")
	}

	var out []models.RankingRow
	rows.Each(func(i int, tr *goquery.Selection) {
		row := rankingRow(tr, category, event, week)
		// Filler rows render with every cell blank; real but ragged rows
		// are kept and left for validation to judge.
		if row.Rank == "" && row.Player1 == "" && row.Points == "" {
			return
		}
		out = append(out, row)
	})

	if len(out) == 0 {
		return nil, structuralMiss("rankings", "table had only empty rows")
	}

	log.Debug().
		Str("category", category).
		Str("event", event).
		Str("week", week).
		Int("rows", len(out)).
		Msg("Rankings extracted")
	return out, nil
}

func rankingRow(tr *goquery.Selection, category, event, week string) models.RankingRow {
	row := models.RankingRow{
		Rank:     strings.TrimSpace(tr.Find("td.col-rank span.rank-value").First().Text()),
		Change:   strings.TrimSpace(tr.Find("span.ranking-change").First().Text()),
		Points:   strings.TrimSpace(tr.Find("td.col-points").First().Text()),
		Category: category,
		Event:    event,
		Week:     week,
	}
	if row.Change == "" {
		row.Change = "-"
	}

	players := tr.Find("td.col-player a")
	if name := playerName(players.Eq(0)); name != "" {
		row.Player1 = name
	}
	if players.Length() > 1 {
		row.Player2 = playerName(players.Eq(1))
	}

	if title, ok := tr.Find("td.col-player img").First().Attr("title"); ok {
		row.Country = strings.TrimSpace(title)
	}
	return row
}

// playerName joins the two name spans the site renders per player. The
// markup puts the given name in name-1 and the family name in name-2; the
// store wants "family given".
func playerName(a *goquery.Selection) string {
	first := strings.TrimSpace(a.Find("span.name-1").First().Text())
	last := strings.TrimSpace(a.Find("span.name-2").First().Text())
	switch {
	case first == "" && last == "":
		return strings.TrimSpace(a.Text())
	case last == "":
		return first
	case first == "":
		return last
	}
	return last + " " + first
}
