// Package debug provides diagnostics output for the chief CLI.
//
// All diagnostics go to stderr, gated by the CHIEF_DEBUG environment variable
// or the --verbose flag. Business-logic packages never write to files or
// hardcoded paths; they call Logf and let the gate decide.
package debug

import (
	"fmt"
	"os"
)

var (
	enabled     = os.Getenv("CHIEF_DEBUG") != ""
	verboseMode = false
)

// Enabled reports whether diagnostics output is active.
func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose output (wired to --verbose).
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// Logf writes a diagnostic line to stderr when debugging is enabled.
func Logf(format string, args ...interface{}) {
	if enabled || verboseMode {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
