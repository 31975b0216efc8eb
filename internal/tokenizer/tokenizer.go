// Package tokenizer counts tokens against an assembled context document so
// the Chunker can split it to a caller's MaxTokens budget. A Tokenizer is
// constructed once per pipeline run from config.Options.Tokenizer and
// shared by reference by the chunk pass and the document token total -- it
// holds no per-call state, so one instance serves the whole run.
//
// Three encodings are selectable by name:
//   - cl100k_base: the BPE vocabulary shared by GPT-4-era and Claude-era
//     models, and toak's default
//   - o200k_base:  the BPE vocabulary used by GPT-4o/o1
//   - none:        a character-count estimator, for when an exact count
//     isn't worth the tiktoken dictionary load
package tokenizer

import (
	"fmt"
)

// Tokenizer counts tokens in a chunk candidate's text. Implementations must
// be safe for concurrent use, since one instance is shared by reference.
// internal/pipeline.Run calls Count through chunk.Split and for the
// document total, after the worker pool has finished.
type Tokenizer interface {
	// Count returns the token count for text, 0 for empty text, never
	// negative.
	Count(text string) int

	// Name reports the encoding name the Tokenizer counts against.
	Name() string
}

// Encoding names accepted by NewTokenizer and config.Options.Tokenizer.
const (
	NameCL100K = "cl100k_base"
	NameO200K  = "o200k_base"
	NameNone   = "none"
)

// ErrUnknownTokenizer is returned by NewTokenizer for an unrecognised
// encoding name. config.Validate rejects these before Run ever calls
// NewTokenizer, so this path is reached only if a caller constructs Options
// outside that validation.
var ErrUnknownTokenizer = fmt.Errorf("unknown tokenizer")

// NewTokenizer builds the Tokenizer for encoding name. An empty name (the
// config.Options zero value) selects cl100k_base.
//
// cl100k_base and o200k_base load their BPE dictionary through
// pkoukk/tiktoken-go once at construction, respecting TIKTOKEN_CACHE_DIR
// for caching; "none" constructs the zero-cost estimator instead, useful
// when running against a repository offline or when the exact count
// doesn't matter for a rough budget check.
func NewTokenizer(name string) (Tokenizer, error) {
	if name == "" {
		name = NameCL100K
	}

	switch name {
	case NameCL100K, NameO200K:
		return newTiktokenTokenizer(name)
	case NameNone:
		return newEstimatorTokenizer(), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s, %s, %s)", ErrUnknownTokenizer, name, NameCL100K, NameO200K, NameNone)
	}
}
