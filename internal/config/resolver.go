package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

// ResolveOptions configures the multi-source configuration resolution.
type ResolveOptions struct {
	// TargetDir is the directory to search for toak.toml. Defaults to "."
	// if empty.
	TargetDir string

	// ConfigPath overrides repo-config discovery with an explicit file
	// path. Useful for testing and for a future --config flag.
	ConfigPath string

	// CLIFlags holds explicit CLI flag overrides (highest precedence).
	// Keys are flat Options field names: "dir", "output_file_path",
	// "max_tokens", "tokenizer", "verbose", "todo_prompt",
	// "file_type_exclusions", "file_exclusions".
	CLIFlags map[string]any
}

// ResolvedOptions is the result of multi-source configuration resolution.
type ResolvedOptions struct {
	// Options is the final merged configuration ready for use by the
	// pipeline.
	Options *Options

	// Sources tracks which layer each field value came from.
	Sources SourceMap

	// ConfigPath is the repo config file that was loaded, or empty if none
	// was found.
	ConfigPath string
}

// Resolve runs the 4-layer configuration resolution pipeline:
//  1. Built-in defaults
//  2. Repository config (toak.toml found by searching upward from TargetDir,
//     or ResolveOptions.ConfigPath)
//  3. Environment variables (TOAK_* prefix)
//  4. CLI flags (highest precedence)
//
// A missing config file is silently ignored. An invalid file returns an
// error -- per spec, a malformed custom pattern is the only fatal
// condition, but a config file that fails to parse at all is reported
// immediately rather than silently discarded.
func Resolve(opts ResolveOptions) (*ResolvedOptions, error) {
	targetDir := opts.TargetDir
	if targetDir == "" {
		targetDir = "."
	}

	slog.Debug("resolving config", "targetDir", targetDir, "configPath", opts.ConfigPath)

	k := koanf.New(".")
	sources := make(SourceMap)

	defaults := DefaultOptions()
	if err := loadLayer(k, optionsToFlatMap(defaults), sources, SourceDefault); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		found, err := DiscoverRepoConfig(targetDir)
		if err != nil {
			return nil, fmt.Errorf("discovering repo config: %w", err)
		}
		configPath = found
	}

	var custom, customSecret []CustomRule
	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileOpts, err := LoadFromFile(configPath)
			if err != nil {
				return nil, err
			}
			flat, err := extractPresentFlat(configPath)
			if err != nil {
				return nil, err
			}
			if err := loadLayer(k, flat, sources, SourceRepo); err != nil {
				return nil, fmt.Errorf("merging repo config: %w", err)
			}
			custom = fileOpts.CustomPatterns
			customSecret = fileOpts.CustomSecretPatterns
		} else {
			slog.Debug("resolved config path does not exist, skipping", "path", configPath)
			configPath = ""
		}
	}

	envMap := buildEnvMap()
	if len(envMap) > 0 {
		if err := loadLayer(k, envMap, sources, SourceEnv); err != nil {
			return nil, fmt.Errorf("loading env vars: %w", err)
		}
	}

	if len(opts.CLIFlags) > 0 {
		if err := loadLayer(k, opts.CLIFlags, sources, SourceFlag); err != nil {
			return nil, fmt.Errorf("loading CLI flags: %w", err)
		}
	}

	final := flatMapToOptions(k)
	final.CustomPatterns = custom
	final.CustomSecretPatterns = customSecret

	slog.Debug("config resolved",
		"dir", final.Dir,
		"outputFilePath", final.OutputFilePath,
		"maxTokens", final.MaxTokens,
	)

	return &ResolvedOptions{Options: final, Sources: sources, ConfigPath: configPath}, nil
}

// loadLayer merges a flat map into k and marks every key in the map as
// originating from src. This correctly attributes source even when a later
// layer provides the same value as a prior layer.
func loadLayer(k *koanf.Koanf, m map[string]any, sources SourceMap, src Source) error {
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return fmt.Errorf("merge layer %s: %w", src.String(), err)
	}
	for key := range m {
		sources[key] = src
	}
	return nil
}

// extractPresentFlat parses a toak.toml file into a raw Go map and returns a
// flat koanf-compatible map containing only the keys explicitly present in
// the TOML, so unset fields fall through to the lower-precedence layer
// instead of being overwritten with zero values.
func extractPresentFlat(path string) (map[string]any, error) {
	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	flat := make(map[string]any)
	for _, key := range []string{"dir", "output_file_path", "tokenizer", "todo_prompt"} {
		if v, ok := raw[key]; ok {
			flat[key] = v
		}
	}
	if v, ok := raw["max_tokens"]; ok {
		switch n := v.(type) {
		case int64:
			flat["max_tokens"] = int(n)
		default:
			flat["max_tokens"] = v
		}
	}
	if v, ok := raw["verbose"]; ok {
		flat["verbose"] = v
	}
	for _, key := range []string{"file_type_exclusions", "file_exclusions"} {
		if v, ok := raw[key]; ok {
			flat[key] = rawToStringSlice(v)
		}
	}

	return flat, nil
}

// rawToStringSlice converts a raw TOML array value ([]interface{}) into
// []string. Returns nil for unrecognised types.
func rawToStringSlice(v interface{}) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []interface{}:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// optionsToFlatMap converts the scalar/slice fields of Options (everything
// but CustomPatterns/CustomSecretPatterns, which koanf's confmap provider
// cannot usefully flatten) into a flat map for the confmap provider.
func optionsToFlatMap(o *Options) map[string]any {
	return map[string]any{
		"dir":                  o.Dir,
		"output_file_path":     o.OutputFilePath,
		"file_type_exclusions": o.FileTypeExclusions,
		"file_exclusions":      o.FileExclusions,
		"max_tokens":           o.MaxTokens,
		"tokenizer":            o.Tokenizer,
		"verbose":              o.Verbose,
		"todo_prompt":          o.TodoPrompt,
	}
}

// flatMapToOptions converts the current koanf state into an Options struct.
// CustomPatterns/CustomSecretPatterns are populated separately by the
// caller since they never pass through koanf.
func flatMapToOptions(k *koanf.Koanf) *Options {
	return &Options{
		Dir:                filepath.Clean(k.String("dir")),
		OutputFilePath:     k.String("output_file_path"),
		FileTypeExclusions: k.Strings("file_type_exclusions"),
		FileExclusions:     k.Strings("file_exclusions"),
		MaxTokens:          k.Int("max_tokens"),
		Tokenizer:          k.String("tokenizer"),
		Verbose:            k.Bool("verbose"),
		TodoPrompt:         k.String("todo_prompt"),
	}
}
