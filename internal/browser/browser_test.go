package browser

import (
	"math/rand"
	"strings"
	"testing"
)

func TestRandomFingerprint_Ranges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		fp := randomFingerprint(rng)
		if fp.Width < 1200 || fp.Width > 1400 {
			t.Fatalf("width %d out of range", fp.Width)
		}
		if fp.Height < 700 || fp.Height > 900 {
			t.Fatalf("height %d out of range", fp.Height)
		}
		found := false
		for _, ua := range userAgents {
			if fp.UserAgent == ua {
				found = true
			}
		}
		if !found {
			t.Fatalf("user agent %q not from the pool", fp.UserAgent)
		}
	}
}

func TestRandomFingerprint_SeedStable(t *testing.T) {
	a := randomFingerprint(rand.New(rand.NewSource(42)))
	b := randomFingerprint(rand.New(rand.NewSource(42)))
	if a != b {
		t.Errorf("same seed produced different fingerprints: %v vs %v", a, b)
	}
}

func TestCheckStealthScript(t *testing.T) {
	if err := checkStealthScript(); err != nil {
		t.Fatalf("stealth script should compile: %v", err)
	}
}

func TestBlockPhrase_TextNodes(t *testing.T) {
	html := `<html><head><title>Attention Required!</title></head>
	<body><h1>You have been blocked</h1><p>Ray ID: 8a1b2c3d</p></body></html>`
	if got := blockPhrase(html); got == "" {
		t.Fatal("block page text not detected")
	}
}

func TestBlockPhrase_IgnoresScripts(t *testing.T) {
	html := `<html><body>
	<script>var vendor = "cloudflare-analytics";</script>
	<p>Denmark Open results</p>
	</body></html>`
	if got := blockPhrase(html); got != "" {
		t.Errorf("script body triggered block scan: %q", got)
	}
}

func TestBlockPhrase_CleanPage(t *testing.T) {
	html := `<html><body><p>An Se Young def. Chen Yu Fei 21-15 21-18. A blocked shot at the net decided it.</p></body></html>`
	// "blocked" alone in prose must not trip the scan; only block-page
	// phrasing does.
	if got := blockPhrase(html); got != "" {
		t.Errorf("ordinary prose tripped block scan on %q", got)
	}
}

func TestSlugify(t *testing.T) {
	got := slugify("https://bwfworldtour.bwfbadminton.com/tournament/denmark-open/results/")
	if strings.Contains(got, "/") || strings.Contains(got, ":") {
		t.Errorf("slug contains unsafe characters: %q", got)
	}
	if got == "" {
		t.Error("slug is empty")
	}
}

func TestPrepError_Is(t *testing.T) {
	err := newPrepError(CodeCaptcha, "https://x", "probe hit", nil)
	if !err.Is(ErrCaptcha) {
		t.Error("CodeCaptcha should match ErrCaptcha")
	}
	if err.Is(ErrBlocked) {
		t.Error("CodeCaptcha should not match ErrBlocked")
	}
}
