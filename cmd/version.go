// Package cmd holds build metadata shared by the autoskills binaries.
package cmd

import "fmt"

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// BuildInfo renders the version block printed by "autoskills version".
func BuildInfo(program string) string {
	return fmt.Sprintf("%s version %s\n  commit: %s\n  built:  %s\n", program, Version, Commit, Date)
}
