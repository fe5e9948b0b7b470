package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/pkg/models"
)

const (
	matchCardSel   = "div.match-card"
	courtHeaderSel = "div.court-header"
	tourNameSel    = "div.page-hero-header-text h2"
)

// footerSlot names the positional meaning of the match-card footer labels.
// The site renders them as three unlabeled spans in a fixed order.
const (
	slotCategory = 0
	slotRound    = 1
	slotCourt    = 2
)

// Matches reads every match card from a results page in list view. Court
// headers and match cards interleave in document order; each card belongs
// to the stadium named by the most recent header above it.
func Matches(doc *goquery.Document, tour string) ([]models.MatchRecord, error) {
	if tour == "" {
		tour = strings.TrimSpace(doc.Find(tourNameSel).First().Text())
	}
	if tour == "" {
		return nil, structuralMiss("results", "tournament name not found")
	}

	nodes := doc.Find(courtHeaderSel + ", " + matchCardSel)
	if nodes.Length() == 0 {
		return nil, structuralMiss("results", "no court headers or match cards")
	}

	var matches []models.MatchRecord
	var bad error
	stadium := ""

	nodes.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Is(courtHeaderSel) {
			if v := strings.TrimSpace(s.Find("span.venue-name").First().Text()); v != "" {
				stadium = v
			}
			return true
		}

		m, err := matchCard(s, tour, stadium)
		if err != nil {
			bad = err
			return false
		}
		matches = append(matches, m)
		return true
	})
	if bad != nil {
		return nil, bad
	}

	log.Debug().Str("tour", tour).Int("matches", len(matches)).Msg("Matches extracted")
	return matches, nil
}

type participant struct {
	players []string
	seeding string
	country string
	winner  bool
}

func readParticipant(w *goquery.Selection) participant {
	var p participant
	w.Find("a.participant-name").Each(func(i int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			p.players = append(p.players, name)
		}
	})
	p.seeding = strings.TrimSpace(w.Find("span.seeding").First().Text())
	p.country, _ = w.Find("div.flags-wrapper img").First().Attr("alt")
	p.country = strings.TrimSpace(p.country)
	p.winner = w.Find("div.winner-dot").Length() > 0
	return p
}

func matchCard(s *goquery.Selection, tour, stadium string) (models.MatchRecord, error) {
	name := strings.TrimSpace(s.Find(".match-name").First().Text())
	if name == "" {
		return models.MatchRecord{}, structuralMiss("results", "match card without name")
	}

	// Four participant wrappers per card; the team blocks sit at slots 1
	// and 3 (0 and 2 hold the score columns). Older markup has only the
	// two team blocks.
	wrappers := s.Find("div.participant-wrapper")
	var w1, w2 *goquery.Selection
	switch {
	case wrappers.Length() >= 4:
		w1, w2 = wrappers.Eq(1), wrappers.Eq(3)
	case wrappers.Length() >= 2:
		w1, w2 = wrappers.Eq(0), wrappers.Eq(1)
	default:
		return models.MatchRecord{}, structuralMiss("results", "match card "+name+": participant wrappers missing")
	}

	t1 := readParticipant(w1)
	t2 := readParticipant(w2)

	var scores []models.SetScore
	s.Find("div.game-score-set").Each(func(i int, set *goquery.Selection) {
		points := set.Find("span.set-points")
		scores = append(scores, models.SetScore{
			Team1: strings.TrimSpace(points.Eq(0).Text()),
			Team2: strings.TrimSpace(points.Eq(1).Text()),
		})
	})

	schedule := s.Find("div.schedule-module span")
	date := strings.TrimSpace(schedule.Eq(0).Text())
	status := strings.TrimSpace(schedule.Eq(1).Text())
	timeText := strings.TrimSpace(schedule.Eq(2).Text())

	footer := s.Find("div.footer-label")
	winner := 0
	if t1.winner {
		winner = 1
	} else if t2.winner {
		winner = 2
	}

	return models.MatchRecord{
		Tour:         tour,
		MatchName:    name,
		Team1Players: t1.players,
		Team1Seeding: t1.seeding,
		Team1Country: t1.country,
		Team2Players: t2.players,
		Team2Seeding: t2.seeding,
		Team2Country: t2.country,
		Separator:    strings.TrimSpace(s.Find(".separator").First().Text()),
		Scores:       scores,
		Date:         date,
		Status:       status,
		Time:         timeText,
		Category:     strings.TrimSpace(footer.Eq(slotCategory).Text()),
		Round:        strings.TrimSpace(footer.Eq(slotRound).Text()),
		Court:        strings.TrimSpace(footer.Eq(slotCourt).Text()),
		Stadium:      stadium,
		Duration:     strings.TrimSpace(s.Find(".footer-match-time").First().Text()),
		Winner:       winner,
	}, nil
}
