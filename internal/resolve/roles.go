// Package resolve maps semantic page roles to the CSS selectors that
// currently find them. The site regenerates markup often; every role keeps
// an ordered candidate list so the first selector that still works wins,
// and a structural change shows up as a named resolution failure instead
// of a silent nil.
package resolve

import (
	"fmt"
	"time"
)

// Role names a page element by what it means, not how it is found.
type Role string

const (
	RoleCalendarCards  Role = "calendar cards"
	RoleMatchCards     Role = "match cards"
	RoleRankingSelect  Role = "ranking category dropdown"
	RoleWeekSelect     Role = "week dropdown"
	RolePerPageSelect  Role = "per-page dropdown"
	RoleListbox        Role = "open dropdown listbox"
	RoleRankingTable   Role = "ranking table"
	RoleScheduleTabs   Role = "schedule day tabs"
	RoleListViewToggle Role = "list view toggle"
)

// candidates holds the ordered selector lists per role. Order matters: the
// current markup first, older variants behind it.
var candidates = map[Role][]string{
	RoleCalendarCards: {
		"div.tmt-card-wrapper",
		"div.card.tmt-card.show-add-to-calendar",
		"div.card.tmt-card",
	},
	RoleMatchCards: {
		"div.match-card",
	},
	RoleRankingSelect: {
		"div.select:has(label.ranking-label)",
		"div.ranking-select div.select",
		"div.select",
	},
	RoleWeekSelect: {
		"div.select:has(label.week-label)",
		"div.week-select div.select",
	},
	RolePerPageSelect: {
		"div.select:has(label.per-page-label)",
		"div.per-page-select i.mdi-menu-down",
		"i.mdi-menu-down",
	},
	RoleListbox: {
		"div.v-menu__content div[role=\"listbox\"]",
		"div[role=\"listbox\"]",
	},
	RoleRankingTable: {
		"table tbody tr td.col-rank",
		"table tbody tr",
	},
	RoleScheduleTabs: {
		"ul#ajaxTabsResults a",
	},
	RoleListViewToggle: {
		"label.list-view-toggle",
		"div.view-toggle label",
	},
}

// waits bounds how long a role is worth polling for. Cards that render
// late on a heavy page get more rope than a listbox that either opens or
// doesn't.
var waits = map[Role]time.Duration{
	RoleCalendarCards:  30 * time.Second,
	RoleMatchCards:     30 * time.Second,
	RoleRankingSelect:  15 * time.Second,
	RoleWeekSelect:     15 * time.Second,
	RolePerPageSelect:  10 * time.Second,
	RoleListbox:        5 * time.Second,
	RoleRankingTable:   20 * time.Second,
	RoleScheduleTabs:   15 * time.Second,
	RoleListViewToggle: 10 * time.Second,
}

// Candidates returns the ordered selector list for a role.
func Candidates(role Role) []string {
	return candidates[role]
}

// WaitBudget returns how long resolution may poll for a role.
func WaitBudget(role Role) time.Duration {
	if d, ok := waits[role]; ok {
		return d
	}
	return 10 * time.Second
}

// Error reports that no candidate selector of a role matched within the
// wait budget.
type Error struct {
	Role       Role
	Tried      []string
	Screenshot string
}

func (e *Error) Error() string {
	return fmt.Sprintf("resolve %s: no candidate matched %v", e.Role, e.Tried)
}
