package shape

import (
	"testing"
	"time"
)

func TestMonthToInt_AllMonths(t *testing.T) {
	cases := map[string]int{
		"January": 1, "February": 2, "March": 3, "April": 4,
		"May": 5, "June": 6, "July": 7, "August": 8,
		"September": 9, "October": 10, "November": 11, "December": 12,
	}
	for name, want := range cases {
		got, ok := MonthToInt(name)
		if !ok {
			t.Errorf("MonthToInt(%q) not recognized", name)
			continue
		}
		if got != want {
			t.Errorf("MonthToInt(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestMonthToInt_Abbreviations(t *testing.T) {
	got, ok := MonthToInt("OCT")
	if !ok || got != 10 {
		t.Errorf("MonthToInt(OCT) = %d, %v; want 10, true", got, ok)
	}
}

func TestMonthToInt_Unknown(t *testing.T) {
	for _, s := range []string{"", "Smarch", "13", "janitor", "ju"} {
		if _, ok := MonthToInt(s); ok {
			t.Errorf("MonthToInt(%q) should not be recognized", s)
		}
	}
}

func TestParsePrize(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"US$ 1,450,000", 1450000, true},
		{"$420,000", 420000, true},
		{"1250000", 1250000, true},
		{"TBC", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParsePrize(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParsePrize(%q) = %d, %v; want %d, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFirstNumber(t *testing.T) {
	if n, ok := FirstNumber("Court 3"); !ok || n != 3 {
		t.Errorf("FirstNumber(Court 3) = %d, %v", n, ok)
	}
	if _, ok := FirstNumber("Centre Court"); ok {
		t.Error("FirstNumber(Centre Court) should fail")
	}
}

func TestSeedNumber_AbsentIsUnseeded(t *testing.T) {
	if n := SeedNumber(""); n != 0 {
		t.Errorf("SeedNumber(\"\") = %d, want 0", n)
	}
	if n := SeedNumber("[5]"); n != 5 {
		t.Errorf("SeedNumber([5]) = %d, want 5", n)
	}
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("7 JAN", "Est. 11:30 AM", 2025)
	if err != nil {
		t.Fatalf("CombineDateTime failed: %v", err)
	}
	want := time.Date(2025, time.January, 7, 11, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("CombineDateTime = %v, want %v", got, want)
	}
}

func TestCombineDateTime_Afternoon(t *testing.T) {
	got, err := CombineDateTime("28 oct", "2:05 PM", 2025)
	if err != nil {
		t.Fatalf("CombineDateTime failed: %v", err)
	}
	if got.Hour() != 14 || got.Minute() != 5 || got.Day() != 28 {
		t.Errorf("CombineDateTime = %v", got)
	}
}

func TestCombineDateTime_Malformed(t *testing.T) {
	for _, c := range [][2]string{
		{"JAN", "11:30 AM"},
		{"7 SMARCH", "11:30 AM"},
		{"7 JAN", "half past"},
	} {
		if _, err := CombineDateTime(c[0], c[1], 2025); err == nil {
			t.Errorf("CombineDateTime(%q, %q) should fail", c[0], c[1])
		}
	}
}

func TestWeekStart(t *testing.T) {
	got, err := WeekStart("Week 20", 2025)
	if err != nil {
		t.Fatalf("WeekStart failed: %v", err)
	}
	if got.Weekday() != time.Monday {
		t.Errorf("WeekStart not a Monday: %v", got)
	}
	// ISO week 20 of 2025 starts May 12.
	want := time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekStart(Week 20, 2025) = %v, want %v", got, want)
	}
}

func TestWeekStart_DateSuffixedLabel(t *testing.T) {
	// The live dropdown labels weeks as "Week N (YYYY-MM-DD)".
	got, err := WeekStart("Week 35 (2025-08-26)", 2025)
	if err != nil {
		t.Fatalf("WeekStart failed: %v", err)
	}
	want := time.Date(2025, time.August, 25, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekStart(Week 35 (2025-08-26), 2025) = %v, want %v", got, want)
	}
}

func TestWeekStart_Week1(t *testing.T) {
	// ISO week 1 of 2027 starts Jan 4 (Jan 1-3 belong to week 53 of 2026).
	got, err := WeekStart("Week 1", 2027)
	if err != nil {
		t.Fatalf("WeekStart failed: %v", err)
	}
	want := time.Date(2027, time.January, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekStart(Week 1, 2027) = %v, want %v", got, want)
	}
}

func TestWeekStart_Malformed(t *testing.T) {
	for _, s := range []string{"", "Week", "Week abc", "Week 99", "Weekly 2"} {
		if _, err := WeekStart(s, 2025); err == nil {
			t.Errorf("WeekStart(%q) should fail", s)
		}
	}
}

func TestEventCode(t *testing.T) {
	cases := map[string]string{
		"MEN'S SINGLES":   "MS",
		"WOMEN'S SINGLES": "WS",
		"MEN'S DOUBLES":   "MD",
		"WOMEN'S DOUBLES": "WD",
		"MIXED DOUBLES":   "XD",
	}
	for in, want := range cases {
		got, ok := EventCode(in)
		if !ok || got != want {
			t.Errorf("EventCode(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := EventCode("PICKLEBALL"); ok {
		t.Error("EventCode should reject unknown events")
	}
}

func TestCategoryID(t *testing.T) {
	if id, ok := CategoryID("BWF World Rankings"); !ok || id != 1 {
		t.Errorf("CategoryID(BWF World Rankings) = %d, %v", id, ok)
	}
	if _, ok := CategoryID("imaginary"); ok {
		t.Error("CategoryID should reject unknown categories")
	}
}

func TestNormalizeTeam(t *testing.T) {
	got := NormalizeTeam([]string{" Viktor Axelsen "})
	if len(got) != 1 || got[0] != "Viktor Axelsen" {
		t.Errorf("NormalizeTeam = %v", got)
	}
	if got := NormalizeTeam([]string{"", "  "}); len(got) != 0 {
		t.Errorf("NormalizeTeam of blanks = %v", got)
	}
}
