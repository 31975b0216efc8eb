package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toak-dev/toak/internal/pipeline"
)

func TestRootCommandUse(t *testing.T) {
	assert.Equal(t, "toak", rootCmd.Use)
}

func TestRootCommandSilenceUsage(t *testing.T) {
	assert.True(t, rootCmd.SilenceUsage, "SilenceUsage must be true to avoid printing usage on errors")
}

func TestRootCommandSilenceErrors(t *testing.T) {
	assert.True(t, rootCmd.SilenceErrors, "SilenceErrors must be true for manual error handling")
}

func TestRootCommandHasDirFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("dir")
	require.NotNil(t, flag, "root command must have --dir persistent flag")
	assert.Equal(t, "d", flag.Shorthand)
	assert.Equal(t, ".", flag.DefValue)
}

func TestRootCommandHasOutputFilePathFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("outputFilePath")
	require.NotNil(t, flag, "root command must have --outputFilePath persistent flag")
	assert.Equal(t, "o", flag.Shorthand)
}

func TestRootCommandHasQuietFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	require.NotNil(t, flag, "root command must have --quiet persistent flag")
	assert.Equal(t, "q", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCommandHasPromptFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("prompt")
	require.NotNil(t, flag, "root command must have --prompt persistent flag")
}

func TestRootCommandHasTokenizerFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("tokenizer")
	require.NotNil(t, flag, "root command must have --tokenizer persistent flag")
}

func TestRootCommandHasMaxTokensFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("maxTokens")
	require.NotNil(t, flag, "root command must have --maxTokens persistent flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestRootCommandHasFileTypeExclusionFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("file-type-exclusion")
	require.NotNil(t, flag, "root command must have --file-type-exclusion persistent flag")
}

func TestRootCommandHasFileExclusionFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("file-exclusion")
	require.NotNil(t, flag, "root command must have --file-exclusion persistent flag")
}

func TestExecuteWithHelp(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	code := Execute()
	assert.Equal(t, int(pipeline.ExitSuccess), code)
	assert.Contains(t, buf.String(), "LLM's context window")
}

func TestExecuteHelpShowsAllFlags(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	code := Execute()
	assert.Equal(t, int(pipeline.ExitSuccess), code)

	output := buf.String()
	expectedFlags := []string{"--dir", "--outputFilePath", "--quiet", "--prompt", "--tokenizer", "--maxTokens", "--file-type-exclusion", "--file-exclusion"}
	for _, flag := range expectedFlags {
		assert.Contains(t, output, flag, "help output should show %s flag", flag)
	}
}

func TestExecuteWithUnknownFlag(t *testing.T) {
	rootCmd.SetArgs([]string{"--nonexistent-flag"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetErr(buf)
	defer rootCmd.SetErr(nil)

	code := Execute()
	assert.Equal(t, int(pipeline.ExitError), code)
}

func TestExecuteRunsGenerateAgainstTempDir(t *testing.T) {
	dir := t.TempDir()

	rootCmd.SetArgs([]string{"--dir", dir, "--quiet"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	code := Execute()
	assert.Equal(t, int(pipeline.ExitSuccess), code)
	assert.Contains(t, buf.String(), "wrote")
}

func TestRootCmdReturnsCommand(t *testing.T) {
	cmd := RootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "toak", cmd.Use)
}

func TestGlobalFlagsReturnsValues(t *testing.T) {
	fv := GlobalFlags()
	require.NotNil(t, fv, "GlobalFlags() should return non-nil FlagValues")
}

func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns ExitSuccess", err: nil, want: int(pipeline.ExitSuccess)},
		{name: "generic error returns ExitError", err: errors.New("something went wrong"), want: int(pipeline.ExitError)},
		{name: "pipeline.Error with ExitError code", err: pipeline.NewError("fatal error", errors.New("cause")), want: int(pipeline.ExitError)},
		{name: "pipeline.Error with ExitPartial code", err: pipeline.NewPartialError("partial failure", errors.New("some files failed")), want: int(pipeline.ExitPartial)},
		{name: "wrapped pipeline.Error preserves exit code", err: fmt.Errorf("command failed: %w", pipeline.NewPartialError("partial", nil)), want: int(pipeline.ExitPartial)},
		{name: "deeply wrapped pipeline.Error preserves exit code", err: fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", pipeline.NewError("deep", nil))), want: int(pipeline.ExitError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractExitCode(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}
