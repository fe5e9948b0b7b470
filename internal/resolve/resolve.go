package resolve

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/internal/browser"
)

// Option identifies the candidate selector that won resolution, plus the
// number of elements it matched at that moment.
type Option struct {
	Role     Role
	Selector string
	Count    int
}

const pollInterval = 500 * time.Millisecond

// WaitAny polls the candidate selectors of a role in order until one
// matches at least one element, or the role's wait budget runs out. On
// failure it captures a diagnostic screenshot and returns an *Error naming
// every selector that was tried.
func WaitAny(ctx context.Context, pg *browser.Page, role Role) (Option, error) {
	sels := Candidates(role)
	if len(sels) == 0 {
		return Option{}, fmt.Errorf("resolve: no candidates registered for role %q", role)
	}

	deadline := time.Now().Add(WaitBudget(role))
	for {
		for _, sel := range sels {
			n, err := count(ctx, pg, sel)
			if err != nil {
				return Option{}, fmt.Errorf("resolve %s: probe %q: %w", role, sel, err)
			}
			if n > 0 {
				log.Debug().Str("role", string(role)).Str("selector", sel).Int("count", n).Msg("Role resolved")
				return Option{Role: role, Selector: sel, Count: n}, nil
			}
		}

		if time.Now().After(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			return Option{}, ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	shot := pg.DiagnosticScreenshot(ctx, "resolve-"+string(role))
	return Option{}, &Error{Role: role, Tried: sels, Screenshot: shot}
}

// count evaluates how many elements a selector matches right now.
func count(ctx context.Context, pg *browser.Page, sel string) (int, error) {
	var n int
	js := fmt.Sprintf(`document.querySelectorAll(%q).length`, sel)
	if err := pg.Run(ctx, chromedp.Evaluate(js, &n)); err != nil {
		return 0, err
	}
	return n, nil
}

// click dispatches a real click on the first element the selector matches.
func click(ctx context.Context, pg *browser.Page, sel string) error {
	return pg.Run(ctx, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible))
}
