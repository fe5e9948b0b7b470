// Package browser owns the headless Chrome session and the page
// preparation ritual: fingerprint randomization, stealth, navigation,
// consent dismissal and the captcha/block probes. A page that comes back
// from Prepare is safe to interact with and extract from.
package browser

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/internal/ratelimit"
)

// Options configures a browser session.
type Options struct {
	ChromePath  string
	Headless    bool
	ArtifactDir string
	Limiter     ratelimit.RateLimiter
	NavTimeout  time.Duration

	// Seed pins the fingerprint randomness, for tests.
	Seed int64
}

// Session is one headless browser with a fixed randomized fingerprint. All
// pages prepared through it share the tab, so prepare-then-extract loops
// reuse cookies and accumulated state.
type Session struct {
	opts        Options
	fp          Fingerprint
	rng         *rand.Rand
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewSession launches headless Chrome with anti-automation flags and a
// fingerprint drawn for this session.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	if err := checkStealthScript(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	fp := randomFingerprint(rng)

	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 60 * time.Second
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		// The automation tells detectors actually check for.
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", fmt.Sprintf("%d,%d", fp.Width, fp.Height)),
		chromedp.UserAgent(fp.UserAgent),
	}
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	}
	if path := FindChrome(opts.ChromePath); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Warm up so a broken Chrome install fails here, not mid-scrape.
	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", ErrBrowserNotFound, err)
	}

	log.Debug().
		Str("user_agent", fp.UserAgent).
		Int("width", fp.Width).
		Int("height", fp.Height).
		Msg("Browser session started")

	return &Session{
		opts:        opts,
		fp:          fp,
		rng:         rng,
		allocCancel: allocCancel,
		ctx:         browserCtx,
		cancel:      cancel,
	}, nil
}

// Fingerprint returns the identity this session presents.
func (s *Session) Fingerprint() Fingerprint {
	return s.fp
}

// Close shuts the browser down.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
	log.Debug().Msg("Browser session closed")
}

// politenessDelay sleeps 2-5 s so successive navigations never fire
// back-to-back.
func (s *Session) politenessDelay(ctx context.Context) error {
	d := 2*time.Second + time.Duration(s.rng.Int63n(int64(3*time.Second)))
	log.Debug().Dur("delay", d).Msg("Politeness delay before navigation")
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run executes chromedp actions on the session tab under the given context
// deadline.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := mergeDeadline(s.ctx, ctx)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// mergeDeadline applies the caller context's deadline and cancellation to
// the session's browser context.
func mergeDeadline(browserCtx, callerCtx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := callerCtx.Deadline(); ok {
		ctx, cancel := context.WithDeadline(browserCtx, deadline)
		stop := context.AfterFunc(callerCtx, cancel)
		return ctx, func() { stop(); cancel() }
	}
	ctx, cancel := context.WithCancel(browserCtx)
	stop := context.AfterFunc(callerCtx, cancel)
	return ctx, func() { stop(); cancel() }
}
