package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validOptions(t *testing.T) *Options {
	t.Helper()
	opts := DefaultOptions()
	opts.Dir = t.TempDir()
	return opts
}

func TestValidateAcceptsDefaults(t *testing.T) {
	opts := validOptions(t)
	assert.Empty(t, Validate(opts))
}

func TestValidateRejectsMissingDir(t *testing.T) {
	opts := validOptions(t)
	opts.Dir = "/does/not/exist/anywhere"

	errs := Validate(opts)
	assert.True(t, hasField(errs, "dir"))
}

func TestValidateRejectsUnknownTokenizer(t *testing.T) {
	opts := validOptions(t)
	opts.Tokenizer = "made-up-encoding"

	errs := Validate(opts)
	assert.True(t, hasField(errs, "tokenizer"))
}

func TestValidateRejectsNonPositiveMaxTokens(t *testing.T) {
	opts := validOptions(t)
	opts.MaxTokens = 0

	errs := Validate(opts)
	assert.True(t, hasField(errs, "max_tokens"))
}

func TestValidateRejectsMaxTokensAboveHardCap(t *testing.T) {
	opts := validOptions(t)
	opts.MaxTokens = maxTokensHardCap + 1

	errs := Validate(opts)
	found := false
	for _, e := range errs {
		if e.Field == "max_tokens" && e.Severity == "error" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateWarnsAboveSoftCap(t *testing.T) {
	opts := validOptions(t)
	opts.MaxTokens = maxTokensSoftCap + 1

	errs := Validate(opts)
	found := false
	for _, e := range errs {
		if e.Field == "max_tokens" && e.Severity == "warning" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateRejectsInvalidGlobExclusion(t *testing.T) {
	opts := validOptions(t)
	opts.FileExclusions = []string{"[unterminated"}

	errs := Validate(opts)
	assert.True(t, hasField(errs, "file_exclusions[0]"))
}

func TestValidateRejectsEmptyCustomPattern(t *testing.T) {
	opts := validOptions(t)
	opts.CustomPatterns = []CustomRule{{Pattern: "", Replace: ""}}
	opts.CustomSecretPatterns = []CustomRule{{Pattern: "", Replace: ""}}

	errs := Validate(opts)
	assert.True(t, hasField(errs, "custom_patterns[0].pattern"))
	assert.True(t, hasField(errs, "custom_secret_patterns[0].pattern"))
}

func hasField(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
