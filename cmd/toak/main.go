// Package main is the entry point for the toak CLI tool.
package main

import (
	"os"

	"github.com/toak-dev/toak/internal/buildinfo"
	"github.com/toak-dev/toak/internal/cli"
)

// Build-time metadata injected via ldflags; mirrored into internal/buildinfo
// so the version command can report it without importing main.
var (
	version   = "dev"
	commit    = "none"
	date      = "unknown"
	goVersion = "unknown"
)

func main() {
	buildinfo.Version = version
	buildinfo.Commit = commit
	buildinfo.Date = date
	buildinfo.GoVersion = goVersion

	os.Exit(cli.Execute())
}
