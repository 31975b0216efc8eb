// Package config resolves toak's configuration from four layered sources:
// built-in defaults, a repository toak.toml, TOAK_* environment variables,
// and CLI flags, in ascending order of precedence.
package config

// Options holds every setting the pipeline needs for one run. Unlike a
// profile-based scheme, toak has exactly one active configuration per run;
// Resolve merges all four layers into a single Options value.
type Options struct {
	// Dir is the repository root to scan.
	Dir string `toml:"dir"`

	// OutputFilePath is where the assembled Markdown document is written.
	OutputFilePath string `toml:"output_file_path"`

	// FileTypeExclusions is the list of file extensions (with leading dot,
	// lowercase, e.g. ".png") excluded at the Exclusion Resolver's first
	// layer, in addition to the built-in defaults.
	FileTypeExclusions []string `toml:"file_type_exclusions"`

	// FileExclusions is the list of glob patterns excluded at the
	// Exclusion Resolver's second layer, in addition to the built-in
	// defaults.
	FileExclusions []string `toml:"file_exclusions"`

	// CustomPatterns is an ordered list of additional Cleaner rules applied
	// after the built-in transforms.
	CustomPatterns []CustomRule `toml:"custom_patterns"`

	// CustomSecretPatterns is an ordered list of additional Redactor rules
	// applied after the built-in secret patterns.
	CustomSecretPatterns []CustomRule `toml:"custom_secret_patterns"`

	// MaxTokens is the token budget per chunk.
	MaxTokens int `toml:"max_tokens"`

	// Tokenizer selects the token counting model: "cl100k_base",
	// "o200k_base", or "none".
	Tokenizer string `toml:"tokenizer"`

	// Verbose enables per-file progress logging. Defaults to true; --quiet
	// turns it off.
	Verbose bool `toml:"verbose"`

	// TodoPrompt is free-form appendix text placed after a horizontal rule
	// at the end of the document, supplied via --prompt or config.
	TodoPrompt string `toml:"todo_prompt"`
}

// CustomRule is a {pattern, replacement} pair as written in toak.toml; it is
// compiled into a clean.Rule or redact.Rule by the caller after resolution.
type CustomRule struct {
	Pattern string `toml:"pattern"`
	Replace string `toml:"replace"`
}
