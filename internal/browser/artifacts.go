package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/internal/utils/output"
)

var unsafePath = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// slugify turns a URL into a filesystem-safe artifact stem.
func slugify(url string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	s = unsafePath.ReplaceAllString(s, "_")
	if len(s) > 80 {
		s = s[:80]
	}
	return strings.Trim(s, "_")
}

// writeArtifacts dumps what the browser saw when preparation failed: raw
// HTML, a full-page screenshot and a markdown rendering for quick triage.
// Artifact failures are logged, never fatal; the preparation error is the
// thing the caller must see.
func (p *Page) writeArtifacts(ctx context.Context, reason string) []string {
	dir := p.sess.opts.ArtifactDir
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warn().Err(err).Msg("Could not create artifact dir")
		return nil
	}

	stem := fmt.Sprintf("%s_%s_%s", reason, slugify(p.URL), time.Now().Format("20060102_150405"))
	var written []string

	htmlContent, err := p.HTML(ctx)
	if err == nil {
		path := filepath.Join(dir, stem+".html")
		if err := os.WriteFile(path, []byte(htmlContent), 0644); err == nil {
			written = append(written, path)
		}
	}

	var shot []byte
	if err := p.sess.run(ctx, chromedp.FullScreenshot(&shot, 80)); err == nil {
		path := filepath.Join(dir, stem+".png")
		if err := os.WriteFile(path, shot, 0644); err == nil {
			written = append(written, path)
		}
	} else {
		log.Warn().Err(err).Msg("Screenshot failed")
	}

	if htmlContent != "" {
		path := filepath.Join(dir, stem+".md")
		if err := output.SaveMarkdown(htmlContent, p.URL, path); err == nil {
			written = append(written, path)
		} else {
			log.Warn().Err(err).Msg("Markdown artifact failed")
		}
	}

	log.Info().Strs("artifacts", written).Str("reason", reason).Msg("Failure artifacts written")
	return written
}

// Screenshot saves a full-page screenshot, used by the selector layer for
// resolution diagnostics.
func (p *Page) Screenshot(ctx context.Context, path string) error {
	var shot []byte
	if err := p.sess.run(ctx, chromedp.FullScreenshot(&shot, 80)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, shot, 0644)
}

// SaveHTML writes the page's current HTML into the artifact dir with the
// given reason, returning the path when it worked.
func (p *Page) SaveHTML(ctx context.Context, reason string) string {
	dir := p.sess.opts.ArtifactDir
	if dir == "" {
		return ""
	}
	htmlContent, err := p.HTML(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("HTML snapshot failed")
		return ""
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warn().Err(err).Msg("Could not create artifact dir")
		return ""
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.html", reason, slugify(p.URL), time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(htmlContent), 0644); err != nil {
		log.Warn().Err(err).Msg("HTML snapshot failed")
		return ""
	}
	return path
}

// DiagnosticScreenshot writes a screenshot into the artifact dir with the
// given reason, returning the path when it worked.
func (p *Page) DiagnosticScreenshot(ctx context.Context, reason string) string {
	dir := p.sess.opts.ArtifactDir
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.png", reason, slugify(p.URL), time.Now().Format("20060102_150405")))
	if err := p.Screenshot(ctx, path); err != nil {
		log.Warn().Err(err).Msg("Diagnostic screenshot failed")
		return ""
	}
	return path
}
