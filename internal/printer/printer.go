// Package printer formats CLI output for validation and build runs. Each
// violation is printed as a single diagnostic line so contributors can fix
// everything in one pass.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success message in green with a checkmark prefix.
func Success(format string, a ...any) {
	green.Printf("✓ %s\n", fmt.Sprintf(format, a...))
}

// Warning prints a warning message in yellow.
func Warning(format string, a ...any) {
	yellow.Printf("⚠ %s\n", fmt.Sprintf(format, a...))
}

// Step prints a step message with emphasis (used in multi-step operations).
func Step(format string, a ...any) {
	cyan.Printf("→ %s\n", fmt.Sprintf(format, a...))
}

// Fail prints a failure headline in red to stderr.
func Fail(format string, a ...any) {
	red.Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, a...))
}

// Diagnostic prints a single violation line to stderr. One line per
// violation; the diagnostic stream is the sole recovery channel for
// contributors correcting their submission.
func Diagnostic(line string) {
	fmt.Fprintf(os.Stderr, "  %s\n", line)
}

// Error prints a formatted error with an optional suggestion to stderr and
// returns a plain error for Cobra (not re-printed due to SilenceErrors).
func Error(title string, suggestions ...string) error {
	red.Fprintf(os.Stderr, "%s\n", title)
	for _, s := range suggestions {
		fmt.Fprintf(os.Stderr, "  %s\n", s)
	}
	return fmt.Errorf("%s", title)
}
