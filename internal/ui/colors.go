// Package ui holds the ANSI styling used by the command output and the
// custom help renderer.
package ui

const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Bold wraps s in the bold style.
func Bold(s string) string {
	return ColorBold + s + ColorReset
}

// Success renders s green, used for completion lines.
func Success(s string) string {
	return ColorGreen + s + ColorReset
}

// Error renders s red.
func Error(s string) string {
	return ColorRed + s + ColorReset
}
