package extract

import "testing"

const resultsFixture = `<!DOCTYPE html>
<html><body>
<div class="page-hero-header-text"><h2>Denmark Open 2025</h2></div>
<div class="court-header"><span class="venue-name">Odense Sports Park</span></div>
<div class="match-card">
  <div class="match-name">MS 42</div>
  <div class="participant-wrapper"></div>
  <div class="participant-wrapper">
    <a class="participant-name">Viktor Axelsen</a>
    <span class="seeding">[1]</span>
    <div class="flags-wrapper"><img alt="Denmark"></div>
    <div class="winner-dot"></div>
  </div>
  <div class="participant-wrapper"></div>
  <div class="participant-wrapper">
    <a class="participant-name">Kunlavut Vitidsarn</a>
    <div class="flags-wrapper"><img alt="Thailand"></div>
  </div>
  <span class="separator">vs</span>
  <div class="game-score-set"><span class="set-points">21</span><span class="set-points">15</span></div>
  <div class="game-score-set"><span class="set-points">21</span><span class="set-points">18</span></div>
  <div class="schedule-module">
    <span>7 JAN</span><span>Finished</span><span>Est. 11:30 AM</span>
  </div>
  <div class="footer-label">MS</div>
  <div class="footer-label">R16</div>
  <div class="footer-label">Court 2</div>
  <span class="footer-match-time">0:46</span>
</div>
<div class="match-card">
  <div class="match-name">WD 7</div>
  <div class="participant-wrapper"></div>
  <div class="participant-wrapper">
    <a class="participant-name">Chen Qing Chen</a>
    <a class="participant-name">Jia Yi Fan</a>
    <div class="flags-wrapper"><img alt="China"></div>
  </div>
  <div class="participant-wrapper"></div>
  <div class="participant-wrapper">
    <a class="participant-name">Baek Ha Na</a>
    <a class="participant-name">Lee So Hee</a>
    <div class="flags-wrapper"><img alt="Korea"></div>
    <div class="winner-dot"></div>
  </div>
  <span class="separator">vs</span>
  <div class="schedule-module">
    <span>7 JAN</span><span>Finished</span><span>Est. 1:10 PM</span>
  </div>
  <div class="footer-label">WD</div>
  <div class="footer-label">QF</div>
  <div class="footer-label">Court 1</div>
</div>
</body></html>`

func TestMatches_Fixture(t *testing.T) {
	matches, err := Matches(mustDoc(t, resultsFixture), "")
	if err != nil {
		t.Fatalf("Matches failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("extracted %d matches, want 2", len(matches))
	}

	m := matches[0]
	if m.Tour != "Denmark Open 2025" {
		t.Errorf("Tour = %q", m.Tour)
	}
	if m.MatchName != "MS 42" {
		t.Errorf("MatchName = %q", m.MatchName)
	}
	if len(m.Team1Players) != 1 || m.Team1Players[0] != "Viktor Axelsen" {
		t.Errorf("Team1Players = %v", m.Team1Players)
	}
	if m.Team1Seeding != "[1]" {
		t.Errorf("Team1Seeding = %q", m.Team1Seeding)
	}
	if m.Team1Country != "Denmark" || m.Team2Country != "Thailand" {
		t.Errorf("countries = %q, %q", m.Team1Country, m.Team2Country)
	}
	if len(m.Scores) != 2 || m.Scores[0].Team1 != "21" || m.Scores[0].Team2 != "15" {
		t.Errorf("Scores = %v", m.Scores)
	}
	if m.Date != "7 JAN" || m.Status != "Finished" || m.Time != "Est. 11:30 AM" {
		t.Errorf("schedule trio = %q, %q, %q", m.Date, m.Status, m.Time)
	}
	if m.Category != "MS" || m.Round != "R16" || m.Court != "Court 2" {
		t.Errorf("footer slots = %q, %q, %q", m.Category, m.Round, m.Court)
	}
	if m.Stadium != "Odense Sports Park" {
		t.Errorf("Stadium = %q", m.Stadium)
	}
	if m.Duration != "0:46" {
		t.Errorf("Duration = %q", m.Duration)
	}
	if m.Winner != 1 {
		t.Errorf("Winner = %d, want 1", m.Winner)
	}

	d := matches[1]
	if len(d.Team1Players) != 2 || len(d.Team2Players) != 2 {
		t.Errorf("doubles players = %v / %v", d.Team1Players, d.Team2Players)
	}
	if d.Winner != 2 {
		t.Errorf("doubles Winner = %d, want 2", d.Winner)
	}
	if d.Stadium != "Odense Sports Park" {
		t.Errorf("doubles Stadium = %q", d.Stadium)
	}
}

func TestMatches_WinnerDotOnBothPrefersTeam1(t *testing.T) {
	html := `<html><body>
	<div class="page-hero-header-text"><h2>T</h2></div>
	<div class="court-header"><span class="venue-name">Arena</span></div>
	<div class="match-card">
	  <div class="match-name">MS 1</div>
	  <div class="participant-wrapper"><a class="participant-name">A</a><div class="winner-dot"></div></div>
	  <div class="participant-wrapper"><a class="participant-name">B</a><div class="winner-dot"></div></div>
	</div>
	</body></html>`
	matches, err := Matches(mustDoc(t, html), "")
	if err != nil {
		t.Fatalf("Matches failed: %v", err)
	}
	if matches[0].Winner != 1 {
		t.Errorf("Winner = %d, want 1 when both dots render", matches[0].Winner)
	}
}

func TestMatches_CardWithoutNameFails(t *testing.T) {
	html := `<html><body>
	<div class="page-hero-header-text"><h2>T</h2></div>
	<div class="match-card"><div class="participant-wrapper"></div></div>
	</body></html>`
	if _, err := Matches(mustDoc(t, html), ""); err == nil {
		t.Fatal("nameless match card should abort extraction")
	}
}

func TestMatches_NoTournamentNameFails(t *testing.T) {
	if _, err := Matches(mustDoc(t, "<html><body></body></html>"), ""); err == nil {
		t.Fatal("missing tournament name should abort extraction")
	}
}
