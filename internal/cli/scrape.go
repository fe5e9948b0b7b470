// internal/cli/scrape.go
package cli

import (
	"fmt"
	"strings"

	"github.com/shuttlestats/courtscrape/internal/app"
	"github.com/shuttlestats/courtscrape/internal/ui"
	"github.com/shuttlestats/courtscrape/internal/utils/output"
	"github.com/shuttlestats/courtscrape/pkg/models"
)

func calendarURL(base string) string {
	return strings.TrimRight(base, "/") + "/calendar/"
}

func rankingsURL(base string) string {
	return strings.TrimRight(base, "/") + "/rankings/"
}

// saveBatch writes a scraped batch to the output directory and reports the
// file on stdout.
func saveBatch(a *app.Application, batch *models.Batch) (string, error) {
	path, err := output.WriteBatch(a.Config.OutputDir, batch)
	if err != nil {
		return "", fmt.Errorf("failed to write batch: %w", err)
	}
	fmt.Printf("%s %d %s records -> %s\n",
		ui.Success("✓"), batch.Len(), batch.Kind, path)
	return path, nil
}
