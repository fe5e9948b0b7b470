package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/pkg/models"
)

// WriteBatch writes an intermediate batch to dir as
// <kind>_<YYYYMMDD_HHMMSS>.json and returns the path.
func WriteBatch(dir string, batch *models.Batch) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if batch.ScrapedAt.IsZero() {
		batch.ScrapedAt = time.Now()
	}

	name := fmt.Sprintf("%s_%s.json", batch.Kind, batch.ScrapedAt.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	content, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", err
	}

	log.Info().Str("file", path).Int("records", batch.Len()).Msg("Batch written")
	return path, nil
}

// ReadBatch loads an intermediate batch file.
func ReadBatch(path string) (*models.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var batch models.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &batch, nil
}

// Latest returns the newest batch file of the given kind in dir, by
// modification time.
func Latest(dir string, kind models.RecordKind) (string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, string(kind)+"_*.json"))
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("no %s batch files in %s", kind, dir)
	}

	newest := ""
	var newestMod time.Time
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = p
			newestMod = info.ModTime()
		}
	}
	return newest, nil
}
