// Package buildinfo holds build-time metadata injected via ldflags.
// cmd/toak's main copies its own ldflags-injected variables into these at
// startup, so the values are set on package main:
//
//	go build -ldflags "-X main.version=..." ./cmd/toak
package buildinfo

import "runtime"

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
)

// OS returns the operating system (from runtime.GOOS).
func OS() string {
	return runtime.GOOS
}

// Arch returns the architecture (from runtime.GOARCH).
func Arch() string {
	return runtime.GOARCH
}
