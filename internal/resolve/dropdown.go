package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/internal/browser"
	"github.com/shuttlestats/courtscrape/internal/retry"
)

// labelKeywords distinguishes the three Vuetify selects when the candidate
// CSS alone is ambiguous. The fallback opener scans div.select wrappers for
// a label containing the keyword.
var labelKeywords = map[Role]string{
	RoleRankingSelect: "ranking",
	RoleWeekSelect:    "week",
	RolePerPageSelect: "per page",
}

const openByLabelJS = `(() => {
	const want = %q;
	for (const sel of document.querySelectorAll('div.select, div.v-select')) {
		const label = sel.querySelector('label');
		if (!label) continue;
		if (label.textContent.trim().toLowerCase().includes(want)) {
			const slot = sel.querySelector('div.v-input__slot') || sel;
			slot.dispatchEvent(new MouseEvent('click', {bubbles: true}));
			return true;
		}
	}
	return false;
})()`

// OpenDropdown clicks a dropdown control and waits for its listbox to
// appear, retrying the whole click-then-wait up to three times. Vuetify
// menus occasionally swallow the first click while the page is still
// hydrating.
func OpenDropdown(ctx context.Context, pg *browser.Page, role Role) error {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = 3

	return retry.Do(ctx, cfg, func() error {
		if err := clickControl(ctx, pg, role); err != nil {
			return err
		}
		if _, err := WaitAny(ctx, pg, RoleListbox); err != nil {
			log.Debug().Str("role", string(role)).Msg("Listbox did not appear after click")
			return fmt.Errorf("open %s: %w", role, err)
		}
		return nil
	})
}

func clickControl(ctx context.Context, pg *browser.Page, role Role) error {
	for _, sel := range Candidates(role) {
		n, err := count(ctx, pg, sel)
		if err != nil {
			return err
		}
		if n > 0 {
			return click(ctx, pg, sel)
		}
	}

	// No candidate matched outright. Fall back to label-text scanning for
	// the select roles.
	kw, ok := labelKeywords[role]
	if !ok {
		return &Error{Role: role, Tried: Candidates(role)}
	}
	var clicked bool
	js := fmt.Sprintf(openByLabelJS, kw)
	if err := pg.Run(ctx, chromedp.Evaluate(js, &clicked)); err != nil {
		return err
	}
	if !clicked {
		return &Error{Role: role, Tried: append(Candidates(role), "label~"+kw)}
	}
	return nil
}

const listOptionsJS = `(() => {
	const box = document.querySelector('div.v-menu__content div[role="listbox"]') ||
		document.querySelector('div[role="listbox"]');
	if (!box) return [];
	return Array.from(box.querySelectorAll('div.v-list-item__title'))
		.map(el => el.textContent.trim())
		.filter(t => t.length > 0);
})()`

// ListOptions reads the visible option titles of the currently open
// listbox. An empty slice means the listbox rendered with no options,
// which callers treat as a resolution failure.
func ListOptions(ctx context.Context, pg *browser.Page) ([]string, error) {
	var opts []string
	if err := pg.Run(ctx, chromedp.Evaluate(listOptionsJS, &opts)); err != nil {
		return nil, fmt.Errorf("list dropdown options: %w", err)
	}
	return opts, nil
}

const clickOptionJS = `(() => {
	const box = document.querySelector('div.v-menu__content div[role="listbox"]') ||
		document.querySelector('div[role="listbox"]');
	if (!box) return false;
	const titles = box.querySelectorAll('div.v-list-item__title');
	const idx = %d;
	if (idx < 0 || idx >= titles.length) return false;
	const item = titles[idx].closest('div.v-list-item') || titles[idx];
	item.dispatchEvent(new MouseEvent('click', {bubbles: true}));
	return true;
})()`

// Policy controls what happens when no listbox option matches the wanted
// label.
type Policy int

const (
	// Strict fails the operation when nothing matches.
	Strict Policy = iota
	// FallbackFirst selects the first option instead and reports its label.
	FallbackFirst
)

// SelectOption picks the listbox option matching label and returns the
// label that was actually selected. The dropdown must already be open.
func SelectOption(ctx context.Context, pg *browser.Page, label string, policy Policy) (string, error) {
	opts, err := ListOptions(ctx, pg)
	if err != nil {
		return "", err
	}
	if len(opts) == 0 {
		return "", fmt.Errorf("select %q: listbox has no options", label)
	}

	idx, ok := MatchOption(opts, label)
	if !ok {
		if policy == Strict {
			return "", fmt.Errorf("select %q: no option matches (have %v)", label, opts)
		}
		log.Warn().Str("wanted", label).Str("using", opts[0]).Msg("Option missing, falling back to first")
		idx = 0
	}

	var clicked bool
	if err := pg.Run(ctx, chromedp.Evaluate(fmt.Sprintf(clickOptionJS, idx), &clicked)); err != nil {
		return "", err
	}
	if !clicked {
		return "", fmt.Errorf("select %q: option %d vanished before click", label, idx)
	}
	return opts[idx], nil
}

// CloseDropdown dismisses an open listbox with Escape so another control
// can be opened next.
func CloseDropdown(ctx context.Context, pg *browser.Page) error {
	return pg.Run(ctx, chromedp.KeyEvent(kb.Escape))
}

const selectEventJS = `(() => {
	const want = %q;
	for (const tab of document.querySelectorAll('span.ranking-tab-desktop')) {
		if (tab.textContent.trim().toUpperCase() === want) {
			const target = tab.closest('a') || tab.closest('li') || tab;
			target.dispatchEvent(new MouseEvent('click', {bubbles: true}));
			return true;
		}
	}
	return false;
})()`

// SelectEvent clicks the event discipline tab whose visible text equals
// name (compared upper-cased, e.g. "MEN'S SINGLES").
func SelectEvent(ctx context.Context, pg *browser.Page, name string) error {
	var clicked bool
	js := fmt.Sprintf(selectEventJS, strings.ToUpper(name))
	if err := pg.Run(ctx, chromedp.Evaluate(js, &clicked)); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("select event %q: no matching tab", name)
	}
	return nil
}

const switchListViewJS = `(() => {
	for (const label of document.querySelectorAll('label')) {
		if (label.textContent.trim().toLowerCase() === 'list view') {
			label.dispatchEvent(new MouseEvent('click', {bubbles: true}));
			return true;
		}
	}
	return false;
})()`

// SwitchListView flips the results page from grid to list layout. Missing
// toggle is not fatal; some pages only render the list form.
func SwitchListView(ctx context.Context, pg *browser.Page) (bool, error) {
	var clicked bool
	if err := pg.Run(ctx, chromedp.Evaluate(switchListViewJS, &clicked)); err != nil {
		return false, err
	}
	if !clicked {
		log.Debug().Msg("List view toggle not present, assuming list layout")
	}
	return clicked, nil
}
