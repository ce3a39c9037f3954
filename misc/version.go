// Package misc provides program identity and build information.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "bcheck"

// GetAppName returns short program name used in logs, reports and file names.
func GetAppName() string {
	return appName
}

var buildInfo = sync.OnceValues(func() (string, string) {
	version, hash := "devel", "unknown"
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return version, hash
	}
	if len(bi.Main.Version) > 0 && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			hash = s.Value
			if len(hash) > 12 {
				hash = hash[:12]
			}
		}
	}
	return version, hash
})

// GetVersion returns program version recorded in build information.
func GetVersion() string {
	v, _ := buildInfo()
	return v
}

// GetGitHash returns abbreviated VCS revision recorded in build information.
func GetGitHash() string {
	_, h := buildInfo()
	return h
}
