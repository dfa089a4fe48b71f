// Package version exposes build-time version information for covcode.
package version

import "fmt"

// Populated by the linker in release builds.
var (
	Version = "0.4.0-dev"
	Commit  = "none"
	Date    = "unknown"
)

// URL is the project home, shown in report footers and help output.
const URL = "https://github.com/nedbat/covcode"

// String returns the full human-readable version line.
func String() string {
	return fmt.Sprintf("covcode %s (commit: %s, built: %s)", Version, Commit, Date)
}
