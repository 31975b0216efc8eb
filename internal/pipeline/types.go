// Package pipeline defines the central data types shared across all pipeline
// stages: discovery, exclusion, cleaning, redaction, assembly, and chunking
// all operate on the same DTOs defined here.
//
// This file holds only data types and lightweight helpers, with no
// dependency beyond the xxh3 hashing used for content fingerprints; the
// Run orchestrator lives in pipeline.go.
package pipeline

import "github.com/zeebo/xxh3"

// ExitCode represents the process exit code returned by the toak CLI.
type ExitCode int

const (
	// ExitSuccess indicates the pipeline completed successfully.
	ExitSuccess ExitCode = 0

	// ExitError indicates a fatal error occurred (e.g. a custom pattern
	// failed to compile).
	ExitError ExitCode = 1

	// ExitPartial indicates partial success: some files failed processing
	// (soft per-file I/O errors) but output was still generated for the rest.
	ExitPartial ExitCode = 2
)

// FileRecord is the central DTO passed between pipeline stages. Each stage
// enriches the record as the file flows through the pipeline:
//
//   - Enumerator: sets Path
//   - Exclusion Resolver: nothing (the path is simply dropped if rejected)
//   - Reader: sets Raw, decode errors are repaired in place
//   - Cleaner: sets Cleaned from Raw
//   - Redactor: sets Redacted from Cleaned, sets Redactions, sets ContentHash
//
// A FileRecord is exclusively owned by the stage currently processing it and
// is released after that stage emits its derived value; it is never retained
// past the worker that produced it.
type FileRecord struct {
	// Path is relative to the repository root, forward-slash normalized.
	Path string

	// Raw is the UTF-8 decoded file content (invalid sequences replaced).
	Raw string

	// Cleaned is Raw after the Cleaner's ordered textual transforms.
	Cleaned string

	// Redacted is Cleaned after the Redactor's ordered secret-matching
	// patterns and the sentinel-only line filter.
	Redacted string

	// Redactions is the number of secret-shaped substrings replaced by the
	// Redactor while producing Redacted.
	Redactions int

	// ContentHash is the xxh3-64 hash of Redacted. It has no bearing on
	// admission or rendering; it exists solely to support the determinism
	// self-check (two runs over identical input hash identically) and as a
	// future incremental-run cache key.
	ContentHash uint64

	// Error records a soft per-file failure (unreadable file). When set,
	// the record is dropped by the caller and processing continues with the
	// remaining files.
	Error error
}

// Finalize computes ContentHash from Redacted. Callers invoke this once the
// Redactor has produced its final output for the record.
func (r *FileRecord) Finalize() {
	r.ContentHash = xxh3.HashString(r.Redacted)
}

// IsEmpty reports whether the record's redacted body is empty after
// trimming, which signals that the Assembler should omit its Section
// entirely per spec.
func (r *FileRecord) IsEmpty() bool {
	return isBlank(r.Redacted)
}

func isBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		default:
			return false
		}
	}
	return true
}

// Section is one rendered file entry in the Document: a heading naming the
// relative path, and a body holding the fenced, cleaned-and-redacted text.
type Section struct {
	// Heading is the file's relative path, rendered exactly as produced by
	// the Enumerator.
	Heading string

	// Body is the redacted file content, never empty after trimming. It is
	// placed inside the fence verbatim: a "~~~" in the content is not
	// escaped.
	Body string
}

// Document is the Assembler's output: an ordered sequence of Sections plus
// an optional caller-supplied appendix.
type Document struct {
	// Sections appear in Enumerator order regardless of processing
	// parallelism.
	Sections []Section

	// Appendix is free-form text appended after a horizontal rule, supplied
	// by the caller (e.g. a --prompt flag). Empty means no appendix.
	Appendix string

	// Markdown is the fully rendered document text.
	Markdown string

	// Fingerprint is the xxh3-64 hash of Markdown. Two runs over an
	// identical working tree produce an identical Fingerprint.
	Fingerprint uint64
}

// FileChunk is a bounded slice of one Section's rendered fragment, carrying
// framing and token metadata. One or more FileChunks are emitted per
// Section; chunks of the same file are contiguous in the chunk stream and
// appear in increasing ChunkIndex order.
type FileChunk struct {
	// FileName is the Section's heading (relative path).
	FileName string

	// Content is the full Markdown fragment for this chunk, including
	// heading and fence framing.
	Content string

	// Tokens is the configured Tokenizer's count for the heading/fence
	// framing plus its count for the body, each counted separately.
	Tokens int

	// ChunkIndex is the 0-based ordinal of this chunk within its file.
	ChunkIndex int

	// ChunkCount is the total number of chunks emitted for this file. Filled
	// in during the Chunker's second pass once every chunk for the file has
	// been produced.
	ChunkCount int

	// Overflow is set when a single body line's own token count exceeds the
	// configured budget; the chunk is still emitted, accepting the
	// overflow, rather than being silently dropped. It is also set on the
	// single body-less chunk emitted when the framing alone meets or exceeds
	// the budget.
	Overflow bool
}

// DiscoveryResult holds the aggregate output of the file discovery phase.
type DiscoveryResult struct {
	// Files is the slice of paths the Enumerator reported as tracked.
	Files []string

	// TotalFound is the total number of tracked paths before exclusion.
	TotalFound int

	// TotalSkipped is the total number of paths rejected by the Exclusion
	// Resolver, grouped by SkipReasons.
	TotalSkipped int

	// SkipReasons maps each skip reason (e.g. "extension", "pattern",
	// "ignore-file") to the count of paths skipped for that reason.
	SkipReasons map[string]int
}

// RunStats summarizes one pipeline run for the CLI-facing result object. It
// is not a pipeline entity in its own right; Run fills it in while
// enumerating, processing, assembling, and chunking.
type RunStats struct {
	FilesConsidered int
	FilesAdmitted   int
	FilesSkipped    map[string]int
	TotalTokens     int
	ChunkCount      int
}
