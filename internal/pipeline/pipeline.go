// Package pipeline wires the Enumerator, Exclusion Resolver, Reader,
// Cleaner, Redactor, Assembler, and Chunker into one end-to-end run. Files
// are processed by a bounded worker pool and reassembled in Enumerator
// order, matching the concurrency model the rest of the stages were
// designed around: the only blocking operations are the VCS invocation,
// individual file reads, and the final write.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/toak-dev/toak/internal/assemble"
	"github.com/toak-dev/toak/internal/chunk"
	"github.com/toak-dev/toak/internal/clean"
	"github.com/toak-dev/toak/internal/config"
	"github.com/toak-dev/toak/internal/ignore"
	"github.com/toak-dev/toak/internal/reader"
	"github.com/toak-dev/toak/internal/redact"
	"github.com/toak-dev/toak/internal/tokenizer"
	"github.com/toak-dev/toak/internal/vcs"
)

// Run executes the full pipeline for the resolved options and returns a
// Result. A non-nil returned error is always fatal (custom pattern compile
// failure, or a write failure for the assembled document); per-file read
// failures are soft and are instead reflected in Result.Err as an
// ExitPartial *Error, with Result.Success left true since a Document was
// still produced.
func Run(ctx context.Context, opts *config.Options) (*Result, error) {
	root, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, NewError("resolving repository root", err)
	}

	customClean, err := clean.CompileCustomRules(toRulePairs(opts.CustomPatterns))
	if err != nil {
		return nil, NewError("compiling custom cleaner pattern", err)
	}
	customRedact, err := redact.CompileCustomRules(toRulePairs(opts.CustomSecretPatterns))
	if err != nil {
		return nil, NewError("compiling custom redaction pattern", err)
	}

	resolver, err := ignore.New(root, ignore.Options{
		FileTypeExclusions: opts.FileTypeExclusions,
		FileExclusions:     opts.FileExclusions,
		OutputFilePath:     opts.OutputFilePath,
	})
	if err != nil {
		return nil, NewError("building exclusion resolver", err)
	}

	tok, err := tokenizer.NewTokenizer(opts.Tokenizer)
	if err != nil {
		return nil, NewError("initializing tokenizer", err)
	}

	paths := vcs.Enumerate(root)

	stats := RunStats{FilesConsidered: len(paths), FilesSkipped: map[string]int{}}
	var admitted []string
	for _, p := range paths {
		if resolver.Admit(p) {
			admitted = append(admitted, p)
		} else {
			stats.FilesSkipped["excluded"]++
		}
	}
	stats.FilesAdmitted = len(admitted)

	records := processFiles(ctx, root, admitted, customClean, customRedact, opts.Verbose)

	var softErr error
	for _, r := range records {
		if r.Error != nil {
			stats.FilesSkipped["read-error"]++
			if softErr == nil {
				softErr = r.Error
			}
		}
	}

	doc := assemble.Build(records, opts.TodoPrompt)
	chunks := chunk.Split(doc, tok, opts.MaxTokens)
	stats.TotalTokens = tok.Count(doc.Markdown)
	stats.ChunkCount = len(chunks)

	if err := os.WriteFile(filepath.Join(root, opts.OutputFilePath), []byte(doc.Markdown), 0o644); err != nil {
		return nil, NewError("writing output document", err)
	}

	result := &Result{
		Success:    true,
		TokenCount: stats.TotalTokens,
		Document:   doc,
		Chunks:     chunks,
		Stats:      stats,
	}
	if softErr != nil {
		result.Err = NewPartialError(fmt.Sprintf("%d file(s) could not be read", stats.FilesSkipped["read-error"]), softErr)
	}

	return result, nil
}

// processFiles reads, cleans, and redacts every admitted path through a
// worker pool bounded to runtime.NumCPU() concurrent goroutines, then
// returns the resulting FileRecords in the same order as paths regardless
// of which goroutine finished first.
func processFiles(ctx context.Context, root string, paths []string, customClean []clean.Rule, customRedact []redact.Rule, verbose bool) []*FileRecord {
	records := make([]*FileRecord, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = processFile(root, p, customClean, customRedact, verbose)
			return nil
		})
	}

	// A cancelled context only stops new work from starting; it is never
	// treated as a fatal pipeline error since partial output is still
	// valid per spec's soft-failure model.
	_ = g.Wait()

	return records
}

func processFile(root, relPath string, customClean []clean.Rule, customRedact []redact.Rule, verbose bool) *FileRecord {
	raw, err := reader.Read(root, relPath)
	if err != nil {
		return &FileRecord{Path: relPath, Error: err}
	}

	cleaned := clean.Clean(raw, customClean)
	redacted, redactions := redact.Redact(cleaned, customRedact)

	r := &FileRecord{
		Path:       relPath,
		Raw:        raw,
		Cleaned:    cleaned,
		Redacted:   redacted,
		Redactions: redactions,
	}
	r.Finalize()

	if verbose {
		logProcessed(relPath, redactions)
	}

	return r
}

func logProcessed(relPath string, redactions int) {
	if redactions > 0 {
		slog.Info("processed file", "path", relPath, "redactions", redactions)
		return
	}
	slog.Debug("processed file", "path", relPath)
}

func toRulePairs(rules []config.CustomRule) [][2]string {
	pairs := make([][2]string, len(rules))
	for i, r := range rules {
		pairs[i] = [2]string{r.Pattern, r.Replace}
	}
	return pairs
}
