// Package models defines the record types shared by the scrape, shape and
// persist stages. Raw types carry text exactly as it appeared on the page;
// Row types carry shaped values ready for the store.
package models

import (
	"encoding/json"
	"time"
)

// RecordKind identifies which table a record belongs to.
type RecordKind string

const (
	KindTournament RecordKind = "tournament"
	KindMatch      RecordKind = "match"
	KindRanking    RecordKind = "ranking"
)

// TournamentEntry is one calendar card as scraped, month already folded in
// from the preceding month header.
type TournamentEntry struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Month    string `json:"month"`
	Location string `json:"location"`
	Country  string `json:"country"`
	Category string `json:"category"`
	Prize    string `json:"prize"`
	URL      string `json:"results_url,omitempty"`
	Status   string `json:"status,omitempty"`
	Year     int    `json:"year"`
}

// TeamList holds the players of one side. Singles pages serialize the side
// as a bare string rather than a list; both forms decode to a list.
type TeamList []string

func (t *TeamList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*t = TeamList{single}
	return nil
}

// MatchRecord is one match card as scraped from a results page in list view.
type MatchRecord struct {
	Tour         string     `json:"tour"`
	MatchName    string     `json:"match_name"`
	Team1Players TeamList   `json:"team_1_players"`
	Team1Seeding string     `json:"team_1_seeding,omitempty"`
	Team1Country string     `json:"team_1_country"`
	Team2Players TeamList   `json:"team_2_players"`
	Team2Seeding string     `json:"team_2_seeding,omitempty"`
	Team2Country string     `json:"team_2_country"`
	Separator    string     `json:"separator"`
	Scores       []SetScore `json:"scores,omitempty"`
	Date         string     `json:"date"`
	Status       string     `json:"status"`
	Time         string     `json:"time"`
	Category     string     `json:"category"`
	Round        string     `json:"round"`
	Court        string     `json:"court"`
	Stadium      string     `json:"stadium"`
	Duration     string     `json:"duration,omitempty"`
	Winner       int        `json:"winner"`
	Year         int        `json:"year"`
}

// SetScore holds the two point counts of one game.
type SetScore struct {
	Team1 string `json:"team_1"`
	Team2 string `json:"team_2"`
}

// RankingRow is one row of a world-ranking table as scraped, tagged with the
// scope it was read under.
type RankingRow struct {
	Rank     string `json:"rank"`
	Change   string `json:"change"`
	Player1  string `json:"player_1"`
	Player2  string `json:"player_2,omitempty"`
	Country  string `json:"country"`
	Points   string `json:"points"`
	Category string `json:"category"`
	Event    string `json:"event"`
	Week     string `json:"week"`
}

// ScheduleLink is one day tab discovered on a tournament results page.
type ScheduleLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Batch is the envelope written to an intermediate JSON file between the
// scrape and persist stages.
type Batch struct {
	Kind        RecordKind        `json:"kind"`
	ScrapedAt   time.Time         `json:"scraped_at"`
	SourceURL   string            `json:"source_url,omitempty"`
	Tournaments []TournamentEntry `json:"tournaments,omitempty"`
	Matches     []MatchRecord     `json:"matches,omitempty"`
	Rankings    []RankingRow      `json:"rankings,omitempty"`
}

// Len returns the number of records the batch carries.
func (b *Batch) Len() int {
	switch b.Kind {
	case KindTournament:
		return len(b.Tournaments)
	case KindMatch:
		return len(b.Matches)
	case KindRanking:
		return len(b.Rankings)
	}
	return 0
}

// RankingChoices captures the dropdown options discovered on the ranking
// page so operators can see what scopes are scrapeable.
type RankingChoices struct {
	Categories []string `json:"categories"`
	Weeks      []string `json:"weeks"`
}
