package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via ldflags by GoReleaser
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// Get returns the build information. Binaries built without ldflags,
// e.g. by go install, fall back to the module version and VCS stamp.
func Get() BuildInfo {
	info := BuildInfo{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if Version != "dev" {
		return info
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// String formats the build information on one line
func (b BuildInfo) String() string {
	return fmt.Sprintf("draftscan %s (%s) built on %s with %s",
		b.Version, b.Commit, b.Date, b.GoVersion)
}
