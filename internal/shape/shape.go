// Package shape validates scraped records and coerces their text fields
// into typed values for the store. Validation failures are Rejection values
// collected by the caller, never errors in the control-flow sense: one bad
// card must not abort a batch.
package shape

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/pkg/models"
)

// Rejection describes one record that did not pass validation and why.
type Rejection struct {
	Kind   models.RecordKind `json:"kind"`
	Key    string            `json:"key"`
	Field  string            `json:"field"`
	Reason string            `json:"reason"`
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s %q: field %s: %s", r.Kind, r.Key, r.Field, r.Reason)
}

// TournamentRow is a shaped calendar entry.
type TournamentRow struct {
	Name     string
	Date     string
	Month    int
	Year     int
	Location string
	Country  string
	Category string
	Prize    int
	URL      string
	Status   string
}

// MatchRow is a shaped match record.
type MatchRow struct {
	Tour         string
	MatchName    string
	Team1Players string
	Team1Seed    int
	Team1Country string
	Team2Players string
	Team2Seed    int
	Team2Country string
	Separator    string
	Scores       string
	DateTime     time.Time
	Status       string
	Category     string
	Round        string
	Court        int
	Stadium      string
	Duration     string
	Winner       int
}

// RankingRecord is a shaped world-ranking row.
type RankingRecord struct {
	Rank         int
	Change       string
	Player1      string
	Player2      string
	Country      string
	Points       int
	Category     int
	RankCategory string
	Event        string
	Week         time.Time
}

// matchRequired lists the fields a match record cannot persist without.
var matchRequired = []struct {
	name  string
	blank func(models.MatchRecord) bool
}{
	{"tour", func(m models.MatchRecord) bool { return m.Tour == "" }},
	{"match_name", func(m models.MatchRecord) bool { return m.MatchName == "" }},
	{"team_1_players", func(m models.MatchRecord) bool { return len(NormalizeTeam(m.Team1Players)) == 0 }},
	{"team_1_country", func(m models.MatchRecord) bool { return m.Team1Country == "" }},
	{"team_2_players", func(m models.MatchRecord) bool { return len(NormalizeTeam(m.Team2Players)) == 0 }},
	{"team_2_country", func(m models.MatchRecord) bool { return m.Team2Country == "" }},
	{"separator", func(m models.MatchRecord) bool { return m.Separator == "" }},
	{"date", func(m models.MatchRecord) bool { return m.Date == "" }},
	{"status", func(m models.MatchRecord) bool { return m.Status == "" }},
	{"time", func(m models.MatchRecord) bool { return m.Time == "" }},
	{"category", func(m models.MatchRecord) bool { return m.Category == "" }},
	{"round", func(m models.MatchRecord) bool { return m.Round == "" }},
	{"court", func(m models.MatchRecord) bool { return m.Court == "" }},
	{"stadium", func(m models.MatchRecord) bool { return m.Stadium == "" }},
}

// Match validates and coerces one scraped match record.
func Match(m models.MatchRecord) (MatchRow, *Rejection) {
	key := m.Tour + "/" + m.MatchName
	reject := func(field, reason string) (MatchRow, *Rejection) {
		return MatchRow{}, &Rejection{Kind: models.KindMatch, Key: key, Field: field, Reason: reason}
	}

	for _, req := range matchRequired {
		if req.blank(m) {
			return reject(req.name, "required field missing")
		}
	}

	court, ok := FirstNumber(m.Court)
	if !ok {
		return reject("court", fmt.Sprintf("no court number in %q", m.Court))
	}

	year := m.Year
	if year == 0 {
		year = time.Now().Year()
	}
	when, err := CombineDateTime(m.Date, m.Time, year)
	if err != nil {
		return reject("date", err.Error())
	}

	winner := m.Winner
	if winner < 0 || winner > 2 {
		return reject("winner", fmt.Sprintf("winner out of range: %d", winner))
	}

	return MatchRow{
		Tour:         strings.TrimSpace(m.Tour),
		MatchName:    strings.TrimSpace(m.MatchName),
		Team1Players: strings.Join(NormalizeTeam(m.Team1Players), " / "),
		Team1Seed:    SeedNumber(m.Team1Seeding),
		Team1Country: strings.TrimSpace(m.Team1Country),
		Team2Players: strings.Join(NormalizeTeam(m.Team2Players), " / "),
		Team2Seed:    SeedNumber(m.Team2Seeding),
		Team2Country: strings.TrimSpace(m.Team2Country),
		Separator:    m.Separator,
		Scores:       formatScores(m.Scores),
		DateTime:     when,
		Status:       strings.TrimSpace(m.Status),
		Category:     strings.TrimSpace(m.Category),
		Round:        strings.TrimSpace(m.Round),
		Court:        court,
		Stadium:      strings.TrimSpace(m.Stadium),
		Duration:     strings.TrimSpace(m.Duration),
		Winner:       winner,
	}, nil
}

// Tournament validates and coerces one calendar entry.
func Tournament(e models.TournamentEntry) (TournamentRow, *Rejection) {
	reject := func(field, reason string) (TournamentRow, *Rejection) {
		return TournamentRow{}, &Rejection{Kind: models.KindTournament, Key: e.Name, Field: field, Reason: reason}
	}

	if strings.TrimSpace(e.Name) == "" {
		return reject("name", "required field missing")
	}
	if strings.TrimSpace(e.Date) == "" {
		return reject("date", "required field missing")
	}
	month, ok := MonthToInt(e.Month)
	if !ok {
		return reject("month", fmt.Sprintf("unknown month %q", e.Month))
	}

	prize := 0
	if e.Prize != "" {
		if prize, ok = ParsePrize(e.Prize); !ok {
			return reject("prize", fmt.Sprintf("no amount in %q", e.Prize))
		}
	}

	year := e.Year
	if year == 0 {
		year = time.Now().Year()
	}

	return TournamentRow{
		Name:     strings.TrimSpace(e.Name),
		Date:     strings.TrimSpace(e.Date),
		Month:    month,
		Year:     year,
		Location: strings.TrimSpace(e.Location),
		Country:  strings.TrimSpace(e.Country),
		Category: strings.TrimSpace(e.Category),
		Prize:    prize,
		URL:      e.URL,
		Status:   strings.TrimSpace(e.Status),
	}, nil
}

// Ranking validates and coerces one world-ranking row.
func Ranking(r models.RankingRow, year int) (RankingRecord, *Rejection) {
	key := r.Category + "/" + r.Event + "/" + r.Week + "/" + r.Rank
	reject := func(field, reason string) (RankingRecord, *Rejection) {
		return RankingRecord{}, &Rejection{Kind: models.KindRanking, Key: key, Field: field, Reason: reason}
	}

	rank, ok := FirstNumber(r.Rank)
	if !ok {
		return reject("rank", fmt.Sprintf("no rank number in %q", r.Rank))
	}
	if strings.TrimSpace(r.Player1) == "" {
		return reject("player_1", "required field missing")
	}
	if strings.TrimSpace(r.Country) == "" {
		return reject("country", "required field missing")
	}
	points, ok := ParsePoints(r.Points)
	if !ok {
		return reject("points", fmt.Sprintf("no points figure in %q", r.Points))
	}
	category, ok := CategoryID(r.Category)
	if !ok {
		return reject("category", fmt.Sprintf("unknown ranking category %q", r.Category))
	}
	event, ok := EventCode(r.Event)
	if !ok {
		return reject("event", fmt.Sprintf("unknown event %q", r.Event))
	}
	if year == 0 {
		year = time.Now().Year()
	}
	week, err := WeekStart(r.Week, year)
	if err != nil {
		return reject("week", err.Error())
	}

	change := strings.TrimSpace(r.Change)
	if change == "" {
		change = "-"
	}

	return RankingRecord{
		Rank:         rank,
		Change:       change,
		Player1:      strings.TrimSpace(r.Player1),
		Player2:      strings.TrimSpace(r.Player2),
		Country:      strings.TrimSpace(r.Country),
		Points:       points,
		Category:     category,
		RankCategory: strings.TrimSpace(r.Category),
		Event:        event,
		Week:         week,
	}, nil
}

// ShapedBatch is the outcome of shaping one intermediate batch.
type ShapedBatch struct {
	Kind        models.RecordKind
	Tournaments []TournamentRow
	Matches     []MatchRow
	Rankings    []RankingRecord
	Rejections  []Rejection
}

// Batch shapes every record of an intermediate batch. Rejections are logged
// and collected; valid rows flow through.
func Batch(b *models.Batch) ShapedBatch {
	out := ShapedBatch{Kind: b.Kind}
	year := b.ScrapedAt.Year()

	switch b.Kind {
	case models.KindTournament:
		for _, e := range b.Tournaments {
			row, rej := Tournament(e)
			if rej != nil {
				out.Rejections = append(out.Rejections, *rej)
				continue
			}
			out.Tournaments = append(out.Tournaments, row)
		}
	case models.KindMatch:
		for _, m := range b.Matches {
			row, rej := Match(m)
			if rej != nil {
				out.Rejections = append(out.Rejections, *rej)
				continue
			}
			out.Matches = append(out.Matches, row)
		}
	case models.KindRanking:
		for _, r := range b.Rankings {
			row, rej := Ranking(r, year)
			if rej != nil {
				out.Rejections = append(out.Rejections, *rej)
				continue
			}
			out.Rankings = append(out.Rankings, row)
		}
	}

	for _, rej := range out.Rejections {
		log.Warn().
			Str("kind", string(rej.Kind)).
			Str("key", rej.Key).
			Str("field", rej.Field).
			Str("reason", rej.Reason).
			Msg("Record rejected")
	}
	return out
}

func formatScores(scores []models.SetScore) string {
	parts := make([]string, 0, len(scores))
	for _, s := range scores {
		if s.Team1 == "" && s.Team2 == "" {
			continue
		}
		parts = append(parts, s.Team1+"-"+s.Team2)
	}
	return strings.Join(parts, " ")
}
