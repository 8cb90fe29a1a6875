// Package buildinfo carries the version identifiers stamped into the binary
// at link time.
package buildinfo

// Overridden with -ldflags "-X github.com/pcfiz73/fechamento/internal/buildinfo.Version=..."
// and friends; the zero values identify a local development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
