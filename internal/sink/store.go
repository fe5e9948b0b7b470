// Package sink persists shaped records into the results store. Upserts are
// keyed on natural keys so re-running a scrape overwrites instead of
// duplicating.
package sink

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/shuttlestats/courtscrape/internal/shape"
)

// Store wraps the results database. The zero value is not usable; call Open.
type Store struct {
	db *sql.DB
}

// Open connects to the store. A libsql:// or https:// DSN selects the
// hosted driver (the access token is appended as authToken); anything else
// is treated as a local sqlite file path or ":memory:".
func Open(ctx context.Context, dsn, authToken string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("store DSN is empty")
	}

	var db *sql.DB
	var err error
	switch {
	case strings.HasPrefix(dsn, "libsql://"), strings.HasPrefix(dsn, "https://"), strings.HasPrefix(dsn, "wss://"):
		full := dsn
		if authToken != "" {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			full = dsn + sep + "authToken=" + url.QueryEscape(authToken)
		}
		db, err = sql.Open("libsql", full)
	default:
		db, err = sql.Open("sqlite", dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// Serialize writers; sqlite tolerates exactly one.
	db.SetMaxOpenConns(1)

	if !strings.HasPrefix(dsn, "libsql://") && !strings.HasPrefix(dsn, "https://") && !strings.HasPrefix(dsn, "wss://") && dsn != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("dsn", redactDSN(dsn)).Msg("Store opened")
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "?"); i >= 0 {
		return dsn[:i]
	}
	return dsn
}

func (s *Store) init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// UpsertTournament writes one calendar entry, keyed on (name, date).
func (s *Store) UpsertTournament(ctx context.Context, t shape.TournamentRow) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tournaments (name, date, month, year, location, country, category, prize, results_url, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name, date) DO UPDATE SET
			month = excluded.month,
			year = excluded.year,
			location = excluded.location,
			country = excluded.country,
			category = excluded.category,
			prize = excluded.prize,
			results_url = excluded.results_url,
			status = excluded.status`,
		t.Name, t.Date, t.Month, t.Year, t.Location, t.Country, t.Category, t.Prize, t.URL, t.Status)
	if err != nil {
		return fmt.Errorf("upsert tournament %q: %w", t.Name, err)
	}
	return nil
}

// UpsertMatch writes one match, keyed on (tour, match_name, court, match_datetime).
func (s *Store) UpsertMatch(ctx context.Context, m shape.MatchRow) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (tour, match_name, team1_players, team1_seed, team1_country,
			team2_players, team2_seed, team2_country, separator, scores,
			match_datetime, status, category, round, court, stadium, duration, winner)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (tour, match_name, court, match_datetime) DO UPDATE SET
			team1_players = excluded.team1_players,
			team1_seed = excluded.team1_seed,
			team1_country = excluded.team1_country,
			team2_players = excluded.team2_players,
			team2_seed = excluded.team2_seed,
			team2_country = excluded.team2_country,
			separator = excluded.separator,
			scores = excluded.scores,
			status = excluded.status,
			category = excluded.category,
			round = excluded.round,
			stadium = excluded.stadium,
			duration = excluded.duration,
			winner = excluded.winner`,
		m.Tour, m.MatchName, m.Team1Players, m.Team1Seed, m.Team1Country,
		m.Team2Players, m.Team2Seed, m.Team2Country, m.Separator, m.Scores,
		m.DateTime.Format("2006-01-02 15:04:05"), m.Status, m.Category, m.Round,
		m.Court, m.Stadium, m.Duration, m.Winner)
	if err != nil {
		return fmt.Errorf("upsert match %q/%q: %w", m.Tour, m.MatchName, err)
	}
	return nil
}

// UpsertRanking writes one ranking row, keyed on
// (rank, category, rank_category, week, player1_name).
func (s *Store) UpsertRanking(ctx context.Context, r shape.RankingRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rankings (rank, ranking_change, player1_name, player2_name,
			country, points, category, rank_category, week)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (rank, category, rank_category, week, player1_name) DO UPDATE SET
			ranking_change = excluded.ranking_change,
			player2_name = excluded.player2_name,
			country = excluded.country,
			points = excluded.points`,
		r.Rank, r.Change, r.Player1, r.Player2,
		r.Country, r.Points, r.Event, r.Category, r.Week.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("upsert ranking %d/%s: %w", r.Rank, r.Player1, err)
	}
	return nil
}

// Counts returns the row counts per table, mostly for summaries and tests.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, 3)
	for _, table := range []string{"tournaments", "matches", "rankings"} {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}
