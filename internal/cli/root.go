// Package cli implements the Cobra command hierarchy for the toak CLI tool.
// The root command defined here is the entry point and handles cross-cutting
// concerns like logging initialization and error handling.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/toak-dev/toak/internal/config"
	"github.com/toak-dev/toak/internal/pipeline"
)

// flagValues holds the parsed global flag values, populated by BindFlags
// during command initialization and validated in PersistentPreRunE.
var flagValues *FlagValues

var rootCmd = &cobra.Command{
	Use:   "toak",
	Short: "Pack a repository into an LLM-ready context document.",
	Long: `toak walks a repository's tracked files, excludes what doesn't belong in an
LLM's context window, strips comments and noise, redacts anything
secret-shaped, and assembles what's left into a single Markdown document
split into token-budget-sized chunks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateFlags(flagValues, cmd); err != nil {
			return err
		}

		level := config.ResolveLogLevel(true, flagValues.Quiet)
		format := config.ResolveLogFormat()
		config.SetupLogging(level, format)

		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
	RunE: runGenerate,
}

func init() {
	flagValues = BindFlags(rootCmd)
}

// runGenerate resolves configuration for the current flags and runs the
// pipeline end to end.
func runGenerate(cmd *cobra.Command, args []string) error {
	resolved, err := config.Resolve(config.ResolveOptions{
		TargetDir: flagValues.Dir,
		CLIFlags:  CLIFlagMap(flagValues, cmd),
	})
	if err != nil {
		return pipeline.NewError("resolving configuration", err)
	}

	for _, v := range config.Validate(resolved.Options) {
		if v.Severity == "error" {
			return pipeline.NewError("invalid configuration", v)
		}
		slog.Warn(v.Error())
	}

	result, err := pipeline.Run(cmd.Context(), resolved.Options)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d tokens, %d chunks)\n",
		resolved.Options.OutputFilePath, result.TokenCount, result.Stats.ChunkCount)

	return result.Err
}

// Execute runs the root command and returns an appropriate exit code. If the
// error is a *pipeline.Error, its Code is used.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(pipeline.ExitSuccess)
}

// extractExitCode determines the process exit code from an error.
func extractExitCode(err error) int {
	if err == nil {
		return int(pipeline.ExitSuccess)
	}
	var perr *pipeline.Error
	if errors.As(err, &perr) {
		return perr.Code
	}
	return int(pipeline.ExitError)
}

// RootCmd returns the root cobra.Command for use in testing and subcommand
// registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// GlobalFlags returns the parsed global flag values. Available after
// PersistentPreRunE has run.
func GlobalFlags() *FlagValues {
	return flagValues
}
