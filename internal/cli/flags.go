package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// FlagValues collects all parsed global flag values from the CLI. This
// struct is populated by BindFlags and passed to downstream pipeline
// stages after ValidateFlags has run.
type FlagValues struct {
	Dir                string
	OutputFilePath     string
	Quiet              bool
	Prompt             string
	Tokenizer          string
	MaxTokens          int
	FileTypeExclusions []string
	FileExclusions     []string
}

// BindFlags registers toak's global persistent flags on cmd and returns a
// FlagValues pointer that will be populated when the command is executed.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fv.Dir, "dir", "d", ".", "repository root to scan")
	pf.StringVarP(&fv.OutputFilePath, "outputFilePath", "o", "", "output file path (default \"prompt.md\")")
	pf.BoolVarP(&fv.Quiet, "quiet", "q", false, "suppress per-file progress logging")
	pf.StringVar(&fv.Prompt, "prompt", "", "appendix text placed after the document, e.g. a task prompt")
	pf.StringVar(&fv.Tokenizer, "tokenizer", "", "token counting model: cl100k_base, o200k_base, none")
	pf.IntVar(&fv.MaxTokens, "maxTokens", 0, "per-chunk token budget")
	pf.StringArrayVar(&fv.FileTypeExclusions, "file-type-exclusion", nil, "additional file extension to exclude, e.g. \".proprietary\" (repeatable)")
	pf.StringArrayVar(&fv.FileExclusions, "file-exclusion", nil, "additional glob pattern to exclude, e.g. \"*.generated.go\" (repeatable)")

	return fv
}

// ValidateFlags checks the parsed flag values for correctness. Call this
// from PersistentPreRunE after Cobra has parsed the flags.
func ValidateFlags(fv *FlagValues, cmd *cobra.Command) error {
	info, err := os.Stat(fv.Dir)
	if err != nil {
		return fmt.Errorf("--dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("--dir: %s is not a directory", fv.Dir)
	}

	if fv.Tokenizer != "" {
		switch fv.Tokenizer {
		case "cl100k_base", "o200k_base", "none":
		default:
			return fmt.Errorf("--tokenizer: invalid value %q (allowed: cl100k_base, o200k_base, none)", fv.Tokenizer)
		}
	}

	if fv.MaxTokens < 0 {
		return fmt.Errorf("--maxTokens: must be non-negative")
	}

	return nil
}

// CLIFlagMap converts the flags the user explicitly set on cmd into the flat
// map config.Resolve expects for its highest-precedence layer. Flags left at
// their zero value and never passed are omitted so they don't shadow a lower
// layer's value.
func CLIFlagMap(fv *FlagValues, cmd *cobra.Command) map[string]any {
	m := make(map[string]any)
	flags := cmd.Flags()

	if flags.Changed("dir") {
		m["dir"] = fv.Dir
	}
	if flags.Changed("outputFilePath") {
		m["output_file_path"] = fv.OutputFilePath
	}
	if flags.Changed("quiet") {
		m["verbose"] = !fv.Quiet
	}
	if flags.Changed("prompt") {
		m["todo_prompt"] = fv.Prompt
	}
	if flags.Changed("tokenizer") {
		m["tokenizer"] = fv.Tokenizer
	}
	if flags.Changed("maxTokens") {
		m["max_tokens"] = fv.MaxTokens
	}
	if flags.Changed("file-type-exclusion") {
		m["file_type_exclusions"] = fv.FileTypeExclusions
	}
	if flags.Changed("file-exclusion") {
		m["file_exclusions"] = fv.FileExclusions
	}

	return m
}
