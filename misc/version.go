// Package misc keeps small program-wide helpers which have no better home.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "ptc"

// set by the linker during release builds, build info is the fallback
var (
	version string
	gitHash string
)

// GetAppName returns short program name used in logs, reports and temp file names.
func GetAppName() string {
	return appName
}

var readBuildInfo = sync.OnceValues(func() (string, string) {
	ver, hash := "unknown", "unknown"
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			ver = bi.Main.Version
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 8 {
				hash = s.Value[:8]
			}
		}
	}
	return ver, hash
})

// GetVersion returns program version.
func GetVersion() string {
	if version != "" {
		return version
	}
	ver, _ := readBuildInfo()
	return ver
}

// GetGitHash returns short hash of the commit program was built from.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	_, hash := readBuildInfo()
	return hash
}
