package config

import (
	"os"
	"strconv"
)

// Environment variable name constants for TOAK_ prefixed overrides.
const (
	EnvDir            = "TOAK_DIR"
	EnvOutputFilePath = "TOAK_OUTPUT_FILE_PATH"
	EnvMaxTokens      = "TOAK_MAX_TOKENS"
	EnvTokenizer      = "TOAK_TOKENIZER"
	EnvVerbose        = "TOAK_VERBOSE"
)

// buildEnvMap reads TOAK_* environment variables and returns a flat map
// suitable for use with a koanf confmap provider. Only non-empty env vars
// that parse successfully are included. Invalid numeric/boolean values are
// silently skipped so a bad env var does not block the entire resolution
// pipeline.
func buildEnvMap() map[string]any {
	m := make(map[string]any)

	if v := os.Getenv(EnvDir); v != "" {
		m["dir"] = v
	}
	if v := os.Getenv(EnvOutputFilePath); v != "" {
		m["output_file_path"] = v
	}
	if v := os.Getenv(EnvMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			m["max_tokens"] = n
		}
	}
	if v := os.Getenv(EnvTokenizer); v != "" {
		m["tokenizer"] = v
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			m["verbose"] = b
		}
	}

	return m
}
