package browser

import (
	"fmt"
	"math/rand"
)

// userAgents is a small pool of current desktop browsers. A fixed pool
// beats per-run generation: these strings are ones the site genuinely sees
// in the wild.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
}

// humanHeaders are the request headers a real browser sends on a top-level
// navigation. Headless defaults omit several of these, which is an easy tell.
var humanHeaders = map[string]interface{}{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"Upgrade-Insecure-Requests": "1",
}

// Fingerprint is the identity one browser session presents: fixed for the
// session, randomized between sessions.
type Fingerprint struct {
	UserAgent string
	Width     int
	Height    int
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%dx%d %s", f.Width, f.Height, f.UserAgent)
}

// randomFingerprint draws a user agent from the pool and a viewport in the
// common laptop range (1200-1400 wide, 700-900 tall).
func randomFingerprint(rng *rand.Rand) Fingerprint {
	return Fingerprint{
		UserAgent: userAgents[rng.Intn(len(userAgents))],
		Width:     1200 + rng.Intn(201),
		Height:    700 + rng.Intn(201),
	}
}
