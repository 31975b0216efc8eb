package config

// DefaultOutputFilePath is the output path used when neither config nor
// --outputFilePath specify one.
const DefaultOutputFilePath = "prompt.md"

// DefaultMaxTokens is the per-chunk token budget used when no override is
// configured.
const DefaultMaxTokens = 128000

// DefaultTokenizer is the BPE encoding used when no override is configured.
const DefaultTokenizer = "cl100k_base"

// DefaultOptions returns a new Options populated with toak's built-in
// defaults. Callers receive a fresh copy each time; mutating the returned
// value does not affect subsequent calls.
func DefaultOptions() *Options {
	return &Options{
		Dir:            ".",
		OutputFilePath: DefaultOutputFilePath,
		MaxTokens:      DefaultMaxTokens,
		Tokenizer:      DefaultTokenizer,
		Verbose:        true,
	}
}
