package main

import (
	"runtime"
	"testing"
)

func TestVersionCommandExists(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Short == "" {
		t.Error("versionCmd.Short should not be empty")
	}
	if versionCmd.Run == nil {
		t.Error("versionCmd.Run should not be nil")
	}
}

func TestVersionBuildFlags(t *testing.T) {
	// The build injects these via -ldflags; the defaults must be non-empty
	// so an untagged build still prints something sensible.
	if Version == "" {
		t.Error("Version default should not be empty")
	}
	if GitCommit == "" {
		t.Error("GitCommit default should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate default should not be empty")
	}
}

func TestRuntimeInfo(t *testing.T) {
	if runtime.Version() == "" {
		t.Error("runtime.Version() should not be empty")
	}
	if runtime.GOOS == "" || runtime.GOARCH == "" {
		t.Error("runtime GOOS/GOARCH should not be empty")
	}
}
