package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet_LdflagsWin(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "1.2.0", "abc123", "2026-10-01"

	got := Get()
	want := BuildInfo{Version: "1.2.0", Commit: "abc123", Date: "2026-10-01", GoVersion: runtime.Version()}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestBuildInfoString(t *testing.T) {
	info := Get().String()
	if !strings.HasPrefix(info, "draftscan ") {
		t.Errorf("String() = %q, want prefix %q", info, "draftscan ")
	}
	if !strings.HasSuffix(info, runtime.Version()) {
		t.Errorf("String() = %q, want Go version suffix", info)
	}
}
