package extract

import (
	"errors"
	"fmt"
)

// Error reports a structural miss while extracting records from a page.
// Extraction is all-or-nothing per page: any miss aborts the page so a
// half-read card can never reach the store. Snapshot is the path of the
// HTML dump written when the miss was hit, when one could be saved.
type Error struct {
	Page     string
	Part     string
	Snapshot string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("extract %s: %s", e.Page, e.Part)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Snapshot != "" {
		msg = fmt.Sprintf("%s (snapshot %s)", msg, e.Snapshot)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Attach records the debug snapshot path on an extraction error and
// returns the error unchanged otherwise.
func Attach(err error, path string) error {
	var e *Error
	if path != "" && errors.As(err, &e) {
		e.Snapshot = path
	}
	return err
}

func structuralMiss(page, part string) *Error {
	return &Error{Page: page, Part: part, Err: fmt.Errorf("expected structure not found")}
}
