package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging configures the global slog default logger with the given log
// level and format. The format parameter should be "json" for JSON output or
// any other value (including empty string) for human-readable text output.
// All log output is directed to os.Stderr to keep stdout clean for the
// generated document.
//
// This function is safe to call multiple times (idempotent). Each call
// replaces the previous global logger configuration.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter configures the global slog default logger with the
// given log level, format, and output writer. This variant exists primarily
// for testing, allowing log output to be captured in a buffer rather than
// written to os.Stderr.
func SetupLoggingWithWriter(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ResolveLogLevel determines the appropriate slog.Level based on CLI flags
// and environment variables. The priority order (highest to lowest) is:
//
//  1. TOAK_DEBUG=1 environment variable -> slog.LevelDebug
//  2. quiet flag (--quiet) -> slog.LevelError
//  3. verbose flag (defaults to true; there is no --verbose flag) -> slog.LevelDebug
//  4. Default -> slog.LevelInfo
//
// If both verbose and quiet are true, quiet wins: --quiet is the explicit
// opt-out a user reaches for, and verbose's true default should not silently
// override it.
func ResolveLogLevel(verbose, quiet bool) slog.Level {
	if os.Getenv("TOAK_DEBUG") == "1" {
		return slog.LevelDebug
	}

	if quiet {
		return slog.LevelError
	}

	if verbose {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

// ResolveLogFormat reads the TOAK_LOG_FORMAT environment variable and
// returns the log format string. Returns "json" if set to "json"
// (case-insensitive), otherwise "text".
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv("TOAK_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}

// NewLogger returns a child logger derived from the global default logger
// with a "component" attribute set to the given name.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
