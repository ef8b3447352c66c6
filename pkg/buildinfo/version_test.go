package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestTemplateIncludesVersion(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v9.9.9"
	if !strings.Contains(Template(), "v9.9.9") {
		t.Errorf("Template() = %q, want it to contain the version", Template())
	}
	if got := UserAgent(); got != "slicereveal/v9.9.9" {
		t.Errorf("UserAgent() = %q, want %q", got, "slicereveal/v9.9.9")
	}
}

func TestFill(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "dev", "none", "unknown"
	fill(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-10-15T09:00:00Z"},
		},
	})
	if Version != "v0.3.1" || Commit != "abc123" || Date != "2026-10-15T09:00:00Z" {
		t.Errorf("fill() = %s %s %s", Version, Commit, Date)
	}

	Version = "v1.0.0"
	fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "v1.0.0" {
		t.Errorf("fill() overrode ldflags version: %s", Version)
	}
}
