// Package buildinfo carries the version stamped at link time, falling back to
// the VCS revision the Go toolchain records in the binary.
package buildinfo

import (
	"runtime/debug"

	"github.com/rs/zerolog"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

var readBuildInfo = debug.ReadBuildInfo

// Short returns a compact build identifier for UI/logging.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	if rev := vcsRevision(); rev != "" {
		return rev
	}
	return "dev"
}

// Dict returns the build fields for a zerolog event.
func Dict() *zerolog.Event {
	return zerolog.Dict().
		Str("version", Version).
		Str("commit", Commit).
		Str("date", Date)
}

func vcsRevision() string {
	bi, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}
