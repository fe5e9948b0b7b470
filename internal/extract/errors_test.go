package extract

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAttach_RecordsSnapshotPath(t *testing.T) {
	err := Attach(structuralMiss("results", "match cards"), "artifacts/extract_results.html")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Attach changed the error type: %T", err)
	}
	if e.Snapshot != "artifacts/extract_results.html" {
		t.Errorf("Snapshot = %q", e.Snapshot)
	}
	if !strings.Contains(err.Error(), "artifacts/extract_results.html") {
		t.Errorf("message should name the snapshot: %q", err.Error())
	}
}

func TestAttach_ReachesWrappedError(t *testing.T) {
	inner := structuralMiss("results", "match cards")
	wrapped := fmt.Errorf("day %q: %w", "Day 3", inner)

	Attach(wrapped, "dump.html")
	if inner.Snapshot != "dump.html" {
		t.Errorf("Snapshot = %q, want dump.html", inner.Snapshot)
	}
}

func TestAttach_EmptyPathAndForeignError(t *testing.T) {
	e := structuralMiss("calendar", "cards")
	Attach(e, "")
	if e.Snapshot != "" {
		t.Errorf("empty path should not be recorded, got %q", e.Snapshot)
	}

	plain := errors.New("boom")
	if got := Attach(plain, "dump.html"); got != plain {
		t.Errorf("Attach should return the error unchanged, got %v", got)
	}
}
