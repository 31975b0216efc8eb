package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// maxSearchDepth is the maximum number of parent directories to search
// when looking for toak.toml, to prevent runaway traversal.
const maxSearchDepth = 20

// ConfigFileName is the repository-local configuration file toak looks for.
const ConfigFileName = "toak.toml"

// DiscoverRepoConfig walks up the directory tree from startDir, looking for
// a toak.toml file. It returns the absolute path of the first toak.toml
// found, or an empty string if no file is found. The search stops at the
// filesystem root, at a .git directory boundary (repo root), or after
// maxSearchDepth levels, whichever comes first.
//
// Symlinks in the directory chain are resolved before walking to prevent
// loops.
func DiscoverRepoConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("abs path for %s: %w", startDir, err)
	}

	if resolved, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
		abs = resolved
	} else {
		slog.Debug("symlink eval failed, using unresolved path", "dir", abs, "err", evalErr)
	}

	dir := abs
	for depth := 0; depth < maxSearchDepth; depth++ {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, statErr := os.Stat(configPath); statErr == nil {
			slog.Debug("discovered repo config", "path", configPath, "depth", depth)
			return configPath, nil
		}

		if _, statErr := os.Stat(filepath.Join(dir, ".git")); statErr == nil {
			slog.Debug("reached .git boundary, stopping search", "dir", dir, "depth", depth)
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			slog.Debug("reached filesystem root, no toak.toml found")
			return "", nil
		}
		dir = parent
	}

	slog.Debug("reached max search depth without finding toak.toml", "maxDepth", maxSearchDepth)
	return "", nil
}
