// internal/browser/errors.go
package browser

import (
	"errors"
	"fmt"
)

// Common preparation errors
var (
	ErrBrowserNotFound = errors.New("chrome browser not found")
	ErrCaptcha         = errors.New("captcha challenge on page")
	ErrBlocked         = errors.New("access blocked by site")
	ErrNavigation      = errors.New("navigation failed")
	ErrTimeout         = errors.New("page preparation timeout")
)

// Code classifies a preparation failure
type Code string

const (
	CodeCaptcha    Code = "CAPTCHA"
	CodeBlocked    Code = "BLOCKED"
	CodeNavigation Code = "NAVIGATION"
	CodeTimeout    Code = "TIMEOUT"
)

// PrepError is a failed page preparation with enough context to triage:
// which URL, why, and where the artifacts landed.
type PrepError struct {
	Code       Code
	URL        string
	Message    string
	Underlying error
	Artifacts  []string
}

// Error implements the error interface
func (e *PrepError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.URL, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.URL, e.Message)
}

// Unwrap returns the underlying error
func (e *PrepError) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *PrepError) Is(target error) bool {
	if t, ok := target.(*PrepError); ok {
		return e.Code == t.Code
	}
	switch target {
	case ErrCaptcha:
		return e.Code == CodeCaptcha
	case ErrBlocked:
		return e.Code == CodeBlocked
	case ErrNavigation:
		return e.Code == CodeNavigation
	case ErrTimeout:
		return e.Code == CodeTimeout
	}
	return errors.Is(e.Underlying, target)
}

func newPrepError(code Code, url, message string, err error) *PrepError {
	return &PrepError{Code: code, URL: url, Message: message, Underlying: err}
}
