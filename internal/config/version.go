package config

import (
	"fmt"
)

// Build identity, stamped at link time via -ldflags. Unstamped binaries
// report "dev".
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the semantic version of this binary.
func GetVersion() string {
	return Version
}

// GetBuild returns the timestamp the binary was built at.
func GetBuild() string {
	return Build
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return GitCommit
}

// GetFullVersion returns the version annotated with build time and commit,
// for the -version flag and startup logs.
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}
