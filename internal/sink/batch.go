package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/internal/shape"
	"github.com/shuttlestats/courtscrape/pkg/models"
)

// FileResult is the outcome of persisting one intermediate file.
type FileResult struct {
	Path     string
	Inserted int
	Skipped  int
	Errors   []string
}

// Failed reports whether the file produced nothing despite carrying records.
func (r FileResult) Failed() bool {
	return r.Inserted == 0 && (r.Skipped > 0 || len(r.Errors) > 0)
}

// RunSummary aggregates the results of a persist run over many files.
type RunSummary struct {
	Files    []FileResult
	Inserted int
	Skipped  int
	Errors   []string
}

// ProcessFile reads one intermediate batch file, shapes its records and
// upserts the survivors. Shape rejections count as skipped; store errors
// are collected but do not abort the file.
func (s *Store) ProcessFile(ctx context.Context, path string) (FileResult, error) {
	res := FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read batch file: %w", err)
	}
	var batch models.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return res, fmt.Errorf("parse batch file %s: %w", path, err)
	}
	if batch.Len() == 0 {
		log.Warn().Str("file", path).Msg("Batch file carries no records")
		return res, nil
	}

	shaped := shape.Batch(&batch)
	res.Skipped = len(shaped.Rejections)
	for _, rej := range shaped.Rejections {
		res.Errors = append(res.Errors, rej.String())
	}

	record := func(err error) {
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, err.Error())
			return
		}
		res.Inserted++
	}

	for _, t := range shaped.Tournaments {
		record(s.UpsertTournament(ctx, t))
	}
	for _, m := range shaped.Matches {
		record(s.UpsertMatch(ctx, m))
	}
	for _, r := range shaped.Rankings {
		record(s.UpsertRanking(ctx, r))
	}

	evt := log.Info()
	if res.Failed() {
		evt = log.Error()
	}
	evt.Str("file", filepath.Base(path)).
		Int("inserted", res.Inserted).
		Int("skipped", res.Skipped).
		Int("errors", len(res.Errors)).
		Msg("Batch file persisted")

	return res, nil
}

// ProcessGlob persists every file matching the pattern in name order. A
// failed file is recorded in the summary; the run continues.
func (s *Store) ProcessGlob(ctx context.Context, pattern string) (RunSummary, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return RunSummary{}, fmt.Errorf("bad glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return RunSummary{}, fmt.Errorf("no batch files match %q", pattern)
	}
	sort.Strings(paths)

	var sum RunSummary
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res, err := s.ProcessFile(ctx, path)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
		}
		sum.Files = append(sum.Files, res)
		sum.Inserted += res.Inserted
		sum.Skipped += res.Skipped
		sum.Errors = append(sum.Errors, res.Errors...)
	}
	return sum, nil
}
