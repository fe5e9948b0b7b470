package resolve

import (
	"regexp"
	"strings"
)

var weekLabel = regexp.MustCompile(`^Week\s+\d+`)

// MatchOption finds the option best matching target. Exact match wins,
// then case-insensitive substring, then a word-boundary regex built from
// the target. Returns the index and whether anything matched.
func MatchOption(options []string, target string) (int, bool) {
	for i, opt := range options {
		if opt == target {
			return i, true
		}
	}

	lower := strings.ToLower(target)
	for i, opt := range options {
		if strings.Contains(strings.ToLower(opt), lower) {
			return i, true
		}
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(target) + `\b`)
	if err != nil {
		return 0, false
	}
	for i, opt := range options {
		if re.MatchString(opt) {
			return i, true
		}
	}
	return 0, false
}

// WeekOptions filters a listbox option set down to the week labels, in the
// order the site presents them (newest first).
func WeekOptions(options []string) []string {
	var weeks []string
	for _, opt := range options {
		if weekLabel.MatchString(opt) {
			weeks = append(weeks, opt)
		}
	}
	return weeks
}
