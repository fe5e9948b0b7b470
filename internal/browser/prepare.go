package browser

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Page is a prepared page: navigated, settled, consent dismissed, and past
// the captcha/block probes. Interaction runs on the live tab; extraction
// runs on Snapshot.
type Page struct {
	sess *Session
	URL  string
}

// Prepare runs the full preparation ritual against one URL. dwell is how
// long to let client-side rendering settle after navigation; the calendar
// needs far longer than a results page.
func (s *Session) Prepare(ctx context.Context, url string, dwell time.Duration) (*Page, error) {
	if dwell <= 0 {
		dwell = 10 * time.Second
	}

	if err := s.politenessDelay(ctx); err != nil {
		return nil, err
	}
	if s.opts.Limiter != nil {
		if err := s.opts.Limiter.Wait(ctx, url); err != nil {
			return nil, err
		}
	}

	var status int64
	listenCtx, stopListening := context.WithCancel(s.ctx)
	defer stopListening()
	chromedp.ListenTarget(listenCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Type == network.ResourceTypeDocument && resp.Response.URL == url {
				status = resp.Response.Status
			}
		}
	})

	log.Info().Str("url", url).Dur("dwell", dwell).Msg("Preparing page")

	navCtx, cancel := context.WithTimeout(ctx, s.opts.NavTimeout+dwell)
	defer cancel()

	err := s.run(navCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers(humanHeaders)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		chromedp.EmulateViewport(int64(s.fp.Width), int64(s.fp.Height)),
		chromedp.Navigate(url),
		chromedp.Sleep(dwell),
	)
	if err != nil {
		if ctx.Err() != nil || navCtx.Err() != nil {
			return nil, newPrepError(CodeTimeout, url, "navigation timed out", err)
		}
		return nil, newPrepError(CodeNavigation, url, "navigation failed", err)
	}

	p := &Page{sess: s, URL: url}

	p.dismissConsent(ctx)

	// The main-document status is often observable; when the listener
	// missed it (redirect chains, cache), status stays 0 and we proceed.
	if status == 403 || status == 429 || status == 503 {
		prep := newPrepError(CodeBlocked, url, "blocking status on main document", nil)
		prep.Artifacts = p.writeArtifacts(ctx, "blocked")
		return nil, prep
	}

	if captcha, probe := p.hasCaptcha(ctx); captcha {
		prep := newPrepError(CodeCaptcha, url, "captcha indicator present: "+probe, nil)
		prep.Artifacts = p.writeArtifacts(ctx, "captcha")
		return nil, prep
	}

	if err := p.checkBlocked(ctx); err != nil {
		return nil, err
	}

	log.Debug().Str("url", url).Int64("status", status).Msg("Page prepared")
	return p, nil
}

// HTML captures the current outer HTML of the document.
func (p *Page) HTML(ctx context.Context) (string, error) {
	var html string
	err := p.sess.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// Snapshot parses the current DOM into a goquery document. Extraction
// always runs on the latest snapshot; re-snapshot after every interaction.
func (p *Page) Snapshot(ctx context.Context) (*goquery.Document, error) {
	html, err := p.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// Title returns the current document title.
func (p *Page) Title(ctx context.Context) (string, error) {
	var title string
	err := p.sess.run(ctx, chromedp.Title(&title))
	return title, err
}

// Run executes chromedp actions on this page's tab, for the selector layer.
func (p *Page) Run(ctx context.Context, actions ...chromedp.Action) error {
	return p.sess.run(ctx, actions...)
}

// consentSelectors are the accept buttons of the consent dialogs the site
// family uses. Cookiebot first; the generic ones cover rebrands.
var consentSelectors = []string{
	"#CybotCookiebotDialogBodyButtonAcceptAll",
	"#CybotCookiebotDialogBodyLevelButtonLevelOptinAllowAll",
	"#onetrust-accept-btn-handler",
	"button[aria-label='Accept all']",
}

const consentTextClick = `(() => {
	const buttons = document.querySelectorAll('button, a[role="button"]');
	for (const b of buttons) {
		const t = (b.textContent || '').trim().toLowerCase();
		if (t === 'accept all' || t === 'accept all cookies' || t === 'allow all' || t === 'accept cookies') {
			b.click();
			return true;
		}
	}
	return false;
})()`

// dismissConsent clicks through a cookie-consent dialog if one is up. An
// absent dialog is the normal case and not an error.
func (p *Page) dismissConsent(ctx context.Context) {
	for _, sel := range consentSelectors {
		var clicked bool
		script := `(() => {
			const el = document.querySelector(` + "`" + sel + "`" + `);
			if (el) { el.click(); return true; }
			return false;
		})()`
		if err := p.sess.run(ctx, chromedp.Evaluate(script, &clicked)); err != nil {
			return
		}
		if clicked {
			log.Debug().Str("selector", sel).Msg("Consent dialog dismissed")
			p.settle(ctx, time.Second)
			return
		}
	}

	var clicked bool
	if err := p.sess.run(ctx, chromedp.Evaluate(consentTextClick, &clicked)); err == nil && clicked {
		log.Debug().Msg("Consent dialog dismissed via button text")
		p.settle(ctx, time.Second)
	}
}

const captchaProbe = `(() => {
	const sels = ['[id*="captcha"]', '[class*="captcha"]', 'form#challenge-form', 'iframe[src*="captcha"]'];
	for (const s of sels) {
		if (document.querySelector(s)) return s;
	}
	return '';
})()`

// hasCaptcha probes the DOM for a challenge and names the indicator hit.
func (p *Page) hasCaptcha(ctx context.Context) (bool, string) {
	var hit string
	if err := p.sess.run(ctx, chromedp.Evaluate(captchaProbe, &hit)); err != nil {
		log.Warn().Err(err).Msg("Captcha probe failed, assuming clear")
		return false, ""
	}
	return hit != "", hit
}

// checkBlocked looks for block-page fingerprints. The title check is
// advisory (sports pages legitimately mention "blocked" shots); the body
// text scan is what fails the page.
func (p *Page) checkBlocked(ctx context.Context) error {
	title, err := p.Title(ctx)
	if err == nil {
		lower := strings.ToLower(title)
		if strings.Contains(lower, "blocked") || strings.Contains(lower, "cloudflare") {
			log.Warn().Str("title", title).Msg("Page title looks like a block page")
		}
	}

	html, err := p.HTML(ctx)
	if err != nil {
		return newPrepError(CodeNavigation, p.URL, "could not read page content", err)
	}
	if phrase := blockPhrase(html); phrase != "" {
		prep := newPrepError(CodeBlocked, p.URL, "block page text: "+phrase, nil)
		prep.Artifacts = p.writeArtifacts(ctx, "blocked")
		return prep
	}
	return nil
}

func (p *Page) settle(ctx context.Context, d time.Duration) {
	_ = p.sess.run(ctx, chromedp.Sleep(d))
}
