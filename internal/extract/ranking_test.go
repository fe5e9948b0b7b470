package extract

import "testing"

const rankingFixture = `<!DOCTYPE html>
<html><body>
<table>
<tbody>
<tr>
  <td class="col-rank"><span class="rank-value">1</span><span class="ranking-change">-</span></td>
  <td class="col-player">
    <img title="Korea">
    <a><span class="name-1">Se Young</span> <span class="name-2">An</span></a>
  </td>
  <td class="col-points">110,158</td>
</tr>
<tr>
  <td class="col-rank"><span class="rank-value">2</span><span class="ranking-change">+1</span></td>
  <td class="col-player">
    <img title="China">
    <a><span class="name-1">Qing Chen</span> <span class="name-2">Chen</span></a>
    <a><span class="name-1">Yi Fan</span> <span class="name-2">Jia</span></a>
  </td>
  <td class="col-points">99,641</td>
</tr>
<tr>
  <td class="col-rank"><span class="rank-value"></span></td>
  <td class="col-player"></td>
  <td class="col-points"></td>
</tr>
</tbody>
</table>
</body></html>`

func TestRankings_Fixture(t *testing.T) {
	rows, err := Rankings(mustDoc(t, rankingFixture), "BWF World Rankings", "WOMEN'S SINGLES", "Week 20")
	if err != nil {
		t.Fatalf("Rankings failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("extracted %d rows, want 2 (empty filler row dropped)", len(rows))
	}

	r := rows[0]
	if r.Rank != "1" {
		t.Errorf("Rank = %q", r.Rank)
	}
	if r.Player1 != "An Se Young" {
		t.Errorf("Player1 = %q, want family-name-first join", r.Player1)
	}
	if r.Country != "Korea" {
		t.Errorf("Country = %q", r.Country)
	}
	if r.Points != "110,158" {
		t.Errorf("Points = %q", r.Points)
	}
	if r.Category != "BWF World Rankings" || r.Event != "WOMEN'S SINGLES" || r.Week != "Week 20" {
		t.Errorf("scope tags = %q, %q, %q", r.Category, r.Event, r.Week)
	}

	pair := rows[1]
	if pair.Player1 != "Chen Qing Chen" || pair.Player2 != "Jia Yi Fan" {
		t.Errorf("doubles pair = %q / %q", pair.Player1, pair.Player2)
	}
	if pair.Change != "+1" {
		t.Errorf("Change = %q", pair.Change)
	}
}

func TestRankings_MissingChangeDefaults(t *testing.T) {
	html := `<html><body><table><tbody><tr>
	  <td class="col-rank"><span class="rank-value">5</span></td>
	  <td class="col-player"><a><span class="name-1">X</span><span class="name-2">Y</span></a></td>
	  <td class="col-points">50</td>
	</tr></tbody></table></body></html>`
	rows, err := Rankings(mustDoc(t, html), "BWF World Rankings", "MEN'S SINGLES", "Week 2")
	if err != nil {
		t.Fatalf("Rankings failed: %v", err)
	}
	if rows[0].Change != "-" {
		t.Errorf("Change = %q, want -", rows[0].Change)
	}
}

func TestRankings_NoTableFails(t *testing.T) {
	if _, err := Rankings(mustDoc(t, "<html><body></body></html>"), "c", "e", "w"); err == nil {
		t.Fatal("missing table should abort extraction")
	}
}

func TestScheduleLinks_Fixture(t *testing.T) {
	html := `<html><body>
	<ul id="ajaxTabsResults">
	  <li><a href="/tournament/denmark-open/results/2025-10-14">Tue 14</a></li>
	  <li><a href="/tournament/denmark-open/results/2025-10-15">Wed 15</a></li>
	  <li><a href="#">All</a></li>
	</ul>
	</body></html>`
	links, err := ScheduleLinks(mustDoc(t, html), "https://bwfworldtour.bwfbadminton.com/tournament/denmark-open/results/")
	if err != nil {
		t.Fatalf("ScheduleLinks failed: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("extracted %d links, want 2", len(links))
	}
	if links[0].Label != "Tue 14" {
		t.Errorf("Label = %q", links[0].Label)
	}
	want := "https://bwfworldtour.bwfbadminton.com/tournament/denmark-open/results/2025-10-14"
	if links[0].URL != want {
		t.Errorf("URL = %q, want %q", links[0].URL, want)
	}
}

func TestScheduleLinks_MissingListFails(t *testing.T) {
	if _, err := ScheduleLinks(mustDoc(t, "<html><body></body></html>"), "https://x"); err == nil {
		t.Fatal("missing tab list should fail")
	}
}
