package resolve

import "testing"

func TestMatchOption_Exact(t *testing.T) {
	opts := []string{"BWF World Tour Rankings", "BWF World Rankings", "Olympic Qualification Rankings"}
	idx, ok := MatchOption(opts, "BWF World Rankings")
	if !ok || idx != 1 {
		t.Fatalf("got idx=%d ok=%v, want 1 true", idx, ok)
	}
}

func TestMatchOption_ExactBeatsSubstring(t *testing.T) {
	// "BWF World Rankings" is a substring of the first option; the exact
	// entry later in the list must still win.
	opts := []string{"Junior BWF World Rankings", "BWF World Rankings"}
	idx, ok := MatchOption(opts, "BWF World Rankings")
	if !ok || idx != 1 {
		t.Fatalf("got idx=%d ok=%v, want 1 true", idx, ok)
	}
}

func TestMatchOption_CaseInsensitiveSubstring(t *testing.T) {
	opts := []string{"Week 35 (2025-08-26)", "Week 34 (2025-08-19)"}
	idx, ok := MatchOption(opts, "week 34")
	if !ok || idx != 1 {
		t.Fatalf("got idx=%d ok=%v, want 1 true", idx, ok)
	}
}

func TestMatchOption_WordBoundary(t *testing.T) {
	opts := []string{"100 per page", "10 per page"}
	if idx, ok := MatchOption(opts, "100"); !ok || idx != 0 {
		t.Fatalf("got idx=%d ok=%v, want 0 true", idx, ok)
	}
	// "10" is a substring of "100"; the substring pass picks the first
	// containing option, which is how the live dropdown behaves too.
	if idx, ok := MatchOption(opts, "10"); !ok || idx != 0 {
		t.Fatalf("got idx=%d ok=%v, want 0 true", idx, ok)
	}
}

func TestMatchOption_NoMatch(t *testing.T) {
	if _, ok := MatchOption([]string{"Week 35"}, "Olympic"); ok {
		t.Fatal("expected no match")
	}
	if _, ok := MatchOption(nil, "anything"); ok {
		t.Fatal("expected no match on empty options")
	}
}

func TestWeekOptions(t *testing.T) {
	opts := []string{
		"Week 35 (2025-08-26)",
		"All weeks",
		"Week 34 (2025-08-19)",
		"Weekly digest",
		"Week 1",
	}
	weeks := WeekOptions(opts)
	want := []string{"Week 35 (2025-08-26)", "Week 34 (2025-08-19)", "Week 1"}
	if len(weeks) != len(want) {
		t.Fatalf("got %v, want %v", weeks, want)
	}
	for i := range want {
		if weeks[i] != want[i] {
			t.Fatalf("weeks[%d] = %q, want %q", i, weeks[i], want[i])
		}
	}
}

func TestWaitBudget_Default(t *testing.T) {
	if WaitBudget(Role("unregistered")) <= 0 {
		t.Fatal("unregistered role must still get a positive budget")
	}
}

func TestCandidates_EveryRoleNonEmpty(t *testing.T) {
	roles := []Role{
		RoleCalendarCards, RoleMatchCards, RoleRankingSelect, RoleWeekSelect,
		RolePerPageSelect, RoleListbox, RoleRankingTable, RoleScheduleTabs,
		RoleListViewToggle,
	}
	for _, r := range roles {
		if len(Candidates(r)) == 0 {
			t.Errorf("role %q has no candidate selectors", r)
		}
	}
}
