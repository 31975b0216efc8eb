package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// validTokenizers lists the only accepted values for Options.Tokenizer. An
// empty string is invalid; Resolve always fills a default.
var validTokenizers = map[string]bool{
	"cl100k_base": true,
	"o200k_base":  true,
	"none":        true,
}

// maxTokensHardCap is the absolute upper limit for Options.MaxTokens. Values
// above this are almost certainly a configuration mistake.
const maxTokensHardCap = 2_000_000

// maxTokensSoftCap triggers a warning when Options.MaxTokens exceeds it.
const maxTokensSoftCap = 500_000

// Validate inspects opts and returns a slice of ValidationErrors describing
// hard errors and warnings. It does not stop at the first error; all checks
// run and all findings are accumulated before returning. The returned slice
// is nil when no issues are found.
//
// Validate does not modify opts. A finding with Severity "error" marks the
// configuration unusable (the CLI aborts the run on it); a "warning" is
// only logged. A custom pattern that fails to compile is not detected here:
// it is surfaced by clean.CompileCustomRules / redact.CompileCustomRules.
func Validate(opts *Options) []ValidationError {
	if opts == nil {
		return nil
	}

	var results []ValidationError

	if _, err := os.Stat(opts.Dir); err != nil {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "dir",
			Message:  fmt.Sprintf("%s: %v", opts.Dir, err),
			Suggest:  "Pass --dir pointing at an existing directory",
		})
	}

	if !validTokenizers[opts.Tokenizer] {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "tokenizer",
			Message:  fmt.Sprintf("tokenizer %q is invalid", opts.Tokenizer),
			Suggest:  "Valid tokenizers: cl100k_base, o200k_base, none",
		})
	}

	if opts.MaxTokens <= 0 {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "max_tokens",
			Message:  fmt.Sprintf("max_tokens %d must be positive", opts.MaxTokens),
			Suggest:  "Set max_tokens to a positive integer or remove it to use the default",
		})
	} else if opts.MaxTokens > maxTokensHardCap {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "max_tokens",
			Message:  fmt.Sprintf("max_tokens %d exceeds the maximum allowed value of %d", opts.MaxTokens, maxTokensHardCap),
			Suggest:  fmt.Sprintf("Reduce max_tokens to at most %d", maxTokensHardCap),
		})
	} else if opts.MaxTokens > maxTokensSoftCap {
		results = append(results, ValidationError{
			Severity: "warning",
			Field:    "max_tokens",
			Message:  fmt.Sprintf("max_tokens %d is unusually large", opts.MaxTokens),
			Suggest:  fmt.Sprintf("Values above %d may cause memory pressure; verify this is intentional", maxTokensSoftCap),
		})
	}

	results = append(results, validatePatternList("file_exclusions", opts.FileExclusions)...)

	for i, r := range opts.CustomPatterns {
		if r.Pattern == "" {
			results = append(results, ValidationError{
				Severity: "error",
				Field:    fmt.Sprintf("custom_patterns[%d].pattern", i),
				Message:  "pattern is empty",
			})
		}
	}
	for i, r := range opts.CustomSecretPatterns {
		if r.Pattern == "" {
			results = append(results, ValidationError{
				Severity: "error",
				Field:    fmt.Sprintf("custom_secret_patterns[%d].pattern", i),
				Message:  "pattern is empty",
			})
		}
	}

	return results
}

// validatePatternList checks each glob pattern in patterns and returns an
// error for any that fails doublestar's syntax check.
func validatePatternList(field string, patterns []string) []ValidationError {
	var results []ValidationError
	for i, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			results = append(results, ValidationError{
				Severity: "error",
				Field:    fmt.Sprintf("%s[%d]", field, i),
				Message:  fmt.Sprintf("invalid glob pattern %q", pattern),
				Suggest:  "Use doublestar glob syntax, e.g. \"**/*.go\" or \"src/**\"",
			})
		}
	}
	return results
}
