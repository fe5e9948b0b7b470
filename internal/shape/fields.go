package shape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// months maps the lowercased three-letter month prefix to its number.
// Anything outside this table is not a month and the caller must reject
// the record rather than guess.
var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// MonthToInt converts a month name ("October", "OCT") to its number 1-12.
func MonthToInt(name string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if len(key) < 3 {
		return 0, false
	}
	m, ok := months[key[:3]]
	if !ok {
		return 0, false
	}
	// Reject strings that merely start with a month prefix ("janitor").
	full := strings.ToLower(m.String())
	if key != key[:3] && key != full {
		return 0, false
	}
	return int(m), true
}

var digitRun = regexp.MustCompile(`\d+`)

// FirstNumber extracts the first run of digits embedded in s.
func FirstNumber(s string) (int, bool) {
	m := digitRun.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePrize strips currency symbols, commas and whitespace from a prize
// label ("US$ 1,450,000") and returns the amount.
func ParsePrize(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePoints parses a ranking points figure, tolerating thousands commas.
func ParsePoints(s string) (int, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SeedNumber reads a seeding annotation ("[3]", "(5/8)"). A team without an
// annotation is unseeded, which is 0, not an error.
func SeedNumber(s string) int {
	n, ok := FirstNumber(s)
	if !ok {
		return 0
	}
	return n
}

// CombineDateTime merges the separate date ("7 JAN") and time
// ("Est. 11:30 AM") labels of a match card into one timestamp. The site
// never prints the year, so it comes from the scrape context.
func CombineDateTime(dateText, timeText string, year int) (time.Time, error) {
	d := strings.TrimSpace(dateText)
	parts := strings.Fields(d)
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("malformed date %q", dateText)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed day in %q", dateText)
	}
	month, ok := MonthToInt(parts[1])
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month in %q", dateText)
	}

	t := strings.TrimSpace(timeText)
	t = strings.TrimSpace(strings.TrimPrefix(t, "Est."))
	clock, err := time.Parse("3:04 PM", strings.ToUpper(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed time %q: %w", timeText, err)
	}

	return time.Date(year, time.Month(month), day,
		clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}

var weekLabel = regexp.MustCompile(`(?i)^week\s+(\d+)`)

// WeekStart resolves a week dropdown label to the Monday of that ISO week
// in the given year. Labels carry a date suffix on the live site
// ("Week 20 (2025-05-13)"); only the leading week number matters here.
func WeekStart(label string, year int) (time.Time, error) {
	m := weekLabel.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return time.Time{}, fmt.Errorf("malformed week label %q", label)
	}
	week, err := strconv.Atoi(m[1])
	if err != nil || week < 1 || week > 53 {
		return time.Time{}, fmt.Errorf("week number out of range in %q", label)
	}

	// January 4 is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, -(wd - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7), nil
}

// rankingCategories maps the ranking dropdown labels to the small integer
// ids the store uses.
var rankingCategories = map[string]int{
	"bwf world rankings":             1,
	"bwf world tour rankings":        2,
	"bwf world junior rankings":      3,
	"bwf world team rankings":        4,
	"olympic qualification rankings": 5,
}

// CategoryID resolves a ranking category label to its store id.
func CategoryID(label string) (int, bool) {
	id, ok := rankingCategories[strings.ToLower(strings.TrimSpace(label))]
	return id, ok
}

// eventCodes maps event tab labels to the two-letter discipline codes.
var eventCodes = map[string]string{
	"men's singles":   "MS",
	"women's singles": "WS",
	"men's doubles":   "MD",
	"women's doubles": "WD",
	"mixed doubles":   "XD",
}

// EventCode resolves an event tab label ("MEN'S SINGLES") to its code.
func EventCode(name string) (string, bool) {
	code, ok := eventCodes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// NormalizeTeam ensures a team is a player list; a bare string scraped from
// a singles draw becomes a one-element list.
func NormalizeTeam(players []string) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
