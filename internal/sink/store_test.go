package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shuttlestats/courtscrape/internal/shape"
	"github.com/shuttlestats/courtscrape/pkg/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:", "")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleMatch() shape.MatchRow {
	return shape.MatchRow{
		Tour:         "Denmark Open 2025",
		MatchName:    "MS 42",
		Team1Players: "Viktor Axelsen",
		Team1Seed:    1,
		Team1Country: "Denmark",
		Team2Players: "Kunlavut Vitidsarn",
		Team2Country: "Thailand",
		Separator:    "vs",
		Scores:       "21-15 21-18",
		DateTime:     time.Date(2025, time.October, 14, 11, 30, 0, 0, time.UTC),
		Status:       "Finished",
		Category:     "MS",
		Round:        "R16",
		Court:        2,
		Stadium:      "Odense Sports Park",
		Duration:     "0:46",
		Winner:       1,
	}
}

func TestUpsertMatch_Idempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	m := sampleMatch()
	for i := 0; i < 3; i++ {
		if err := s.UpsertMatch(ctx, m); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts["matches"] != 1 {
		t.Errorf("matches = %d after repeated upserts, want 1", counts["matches"])
	}
}

func TestUpsertMatch_OverwritesOnKey(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	m := sampleMatch()
	m.Status = "Live"
	m.Winner = 0
	if err := s.UpsertMatch(ctx, m); err != nil {
		t.Fatal(err)
	}

	m.Status = "Finished"
	m.Winner = 1
	m.Scores = "21-15 21-18"
	if err := s.UpsertMatch(ctx, m); err != nil {
		t.Fatal(err)
	}

	var status string
	var winner int
	err := s.db.QueryRow(
		"SELECT status, winner FROM matches WHERE tour = ? AND match_name = ?",
		m.Tour, m.MatchName).Scan(&status, &winner)
	if err != nil {
		t.Fatal(err)
	}
	if status != "Finished" || winner != 1 {
		t.Errorf("row after overwrite: status=%q winner=%d", status, winner)
	}
}

func TestUpsertMatch_DistinctKeysCoexist(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := sampleMatch()
	b := sampleMatch()
	b.Court = 3
	if err := s.UpsertMatch(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertMatch(ctx, b); err != nil {
		t.Fatal(err)
	}

	counts, _ := s.Counts(ctx)
	if counts["matches"] != 2 {
		t.Errorf("matches = %d, want 2 (court is part of the key)", counts["matches"])
	}
}

func TestUpsertTournament_Idempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	row := shape.TournamentRow{Name: "All England Open", Date: "11 - 16 MAR", Month: 3, Year: 2025, Prize: 1300000}
	if err := s.UpsertTournament(ctx, row); err != nil {
		t.Fatal(err)
	}
	row.Prize = 1500000
	if err := s.UpsertTournament(ctx, row); err != nil {
		t.Fatal(err)
	}

	var prize int
	if err := s.db.QueryRow("SELECT prize FROM tournaments WHERE name = ?", row.Name).Scan(&prize); err != nil {
		t.Fatal(err)
	}
	if prize != 1500000 {
		t.Errorf("prize = %d, want overwrite to 1500000", prize)
	}
	counts, _ := s.Counts(ctx)
	if counts["tournaments"] != 1 {
		t.Errorf("tournaments = %d, want 1", counts["tournaments"])
	}
}

func TestUpsertRanking_Idempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	r := shape.RankingRecord{
		Rank: 1, Change: "-", Player1: "An Se Young", Country: "Korea",
		Points: 110158, Category: 1, RankCategory: "BWF World Rankings",
		Event: "WS", Week: time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
	}
	if err := s.UpsertRanking(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.Points = 111000
	if err := s.UpsertRanking(ctx, r); err != nil {
		t.Fatal(err)
	}

	counts, _ := s.Counts(ctx)
	if counts["rankings"] != 1 {
		t.Errorf("rankings = %d, want 1", counts["rankings"])
	}
	var points int
	if err := s.db.QueryRow("SELECT points FROM rankings WHERE rank = 1").Scan(&points); err != nil {
		t.Fatal(err)
	}
	if points != 111000 {
		t.Errorf("points = %d, want 111000", points)
	}
}

func writeBatchFile(t *testing.T, dir string, batch *models.Batch) string {
	t.Helper()
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "batch.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessFile_CountsInsertedAndSkipped(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	good := models.MatchRecord{
		Tour: "T", MatchName: "MS 1",
		Team1Players: []string{"A"}, Team1Country: "X",
		Team2Players: []string{"B"}, Team2Country: "Y",
		Separator: "vs", Date: "7 JAN", Status: "Finished", Time: "Est. 11:30 AM",
		Category: "MS", Round: "F", Court: "Court 1", Stadium: "Arena",
		Winner: 1, Year: 2025,
	}
	bad := good
	bad.Stadium = ""

	path := writeBatchFile(t, t.TempDir(), &models.Batch{
		Kind:      models.KindMatch,
		ScrapedAt: time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC),
		Matches:   []models.MatchRecord{good, bad},
	})

	res, err := s.ProcessFile(ctx, path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if res.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", res.Inserted)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
	if len(res.Errors) != 1 {
		t.Errorf("Errors = %v, want the rejection recorded", res.Errors)
	}
	if res.Failed() {
		t.Error("file with one insert should not be failed")
	}
}

func TestProcessFile_StoreErrorCountsAsSkipped(t *testing.T) {
	s := testStore(t)

	good := models.MatchRecord{
		Tour: "T", MatchName: "MS 1",
		Team1Players: []string{"A"}, Team1Country: "X",
		Team2Players: []string{"B"}, Team2Country: "Y",
		Separator: "vs", Date: "7 JAN", Status: "Finished", Time: "Est. 11:30 AM",
		Category: "MS", Round: "F", Court: "Court 1", Stadium: "Arena",
		Winner: 1, Year: 2025,
	}
	path := writeBatchFile(t, t.TempDir(), &models.Batch{
		Kind:      models.KindMatch,
		ScrapedAt: time.Now(),
		Matches:   []models.MatchRecord{good},
	})

	// Make every upsert fail.
	s.db.Close()

	res, err := s.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if res.Inserted != 0 {
		t.Errorf("Inserted = %d, want 0", res.Inserted)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want the store error counted", res.Skipped)
	}
	if len(res.Errors) != 1 {
		t.Errorf("Errors = %v, want the store error recorded", res.Errors)
	}
	if !res.Failed() {
		t.Error("file with only store errors should report failed")
	}
}

func TestProcessFile_AllRejectedIsFailed(t *testing.T) {
	s := testStore(t)

	bad := models.MatchRecord{Tour: "T", MatchName: "MS 1"}
	path := writeBatchFile(t, t.TempDir(), &models.Batch{
		Kind:      models.KindMatch,
		ScrapedAt: time.Now(),
		Matches:   []models.MatchRecord{bad},
	})

	res, err := s.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if !res.Failed() {
		t.Error("file with zero inserts and rejections should report failed")
	}
}

func TestProcessGlob_ContinuesPastFailedFile(t *testing.T) {
	s := testStore(t)
	dir := t.TempDir()

	bad := &models.Batch{Kind: models.KindMatch, ScrapedAt: time.Now(),
		Matches: []models.MatchRecord{{Tour: "T", MatchName: "broken"}}}
	badData, _ := json.Marshal(bad)
	if err := os.WriteFile(filepath.Join(dir, "match_001.json"), badData, 0644); err != nil {
		t.Fatal(err)
	}

	good := &models.Batch{Kind: models.KindTournament, ScrapedAt: time.Now(),
		Tournaments: []models.TournamentEntry{{Name: "Denmark Open", Date: "14 - 19 OCT", Month: "October", Year: 2025}}}
	goodData, _ := json.Marshal(good)
	if err := os.WriteFile(filepath.Join(dir, "tournament_002.json"), goodData, 0644); err != nil {
		t.Fatal(err)
	}

	sum, err := s.ProcessGlob(context.Background(), filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatalf("ProcessGlob: %v", err)
	}
	if len(sum.Files) != 2 {
		t.Fatalf("processed %d files, want 2", len(sum.Files))
	}
	if sum.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1 from the good file", sum.Inserted)
	}
	if sum.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 from the bad file", sum.Skipped)
	}
}
