// Package version reports the build identity of the locmeta binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Overridden at link time with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// InitBinaryVersion fills the commit and date from the embedded VCS build
// settings when they were not set at link time.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "unknown" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// String renders the one-line version banner.
func String() string {
	return fmt.Sprintf("locmeta %s (commit: %s, built: %s)", Version, Commit, Date)
}
