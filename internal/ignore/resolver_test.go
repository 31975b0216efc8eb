package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T, opts Options) (*Resolver, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := New(dir, opts)
	require.NoError(t, err)
	return r, dir
}

func writeIgnoreFile(t *testing.T, root, relDir, body string) {
	t.Helper()
	dir := filepath.Join(root, relDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, IgnoreFileName), []byte(body), 0o644))
}

func TestRootIgnoreFileCreatedWithDefaults(t *testing.T) {
	r, root := newResolver(t, Options{})
	_ = r

	data, err := os.ReadFile(filepath.Join(root, IgnoreFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "todo")
	assert.Contains(t, string(data), "prompt.md")
}

func TestRootIgnoreFileNotOverwrittenIfPresent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IgnoreFileName), []byte("custom\n"), 0o644))

	_, err := New(dir, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, IgnoreFileName))
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(data))
}

func TestExtensionExclusion(t *testing.T) {
	r, _ := newResolver(t, Options{})
	assert.False(t, r.Admit("logo.png"), "S7: binary file rejected at layer 1")
	assert.True(t, r.Admit("main.go"))
}

func TestVCSIgnoreFileCreatedWithEntries(t *testing.T) {
	_, root := newResolver(t, Options{OutputFilePath: "prompt.md"})

	data, err := os.ReadFile(filepath.Join(root, VCSIgnoreFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), IgnoreFileName)
	assert.Contains(t, string(data), "prompt.md")
}

func TestVCSIgnoreFileAppendedWithoutDisturbingExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, VCSIgnoreFileName), []byte("node_modules/\n"), 0o644))

	_, err := New(dir, Options{OutputFilePath: "prompt.md"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, VCSIgnoreFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "node_modules/")
	assert.Contains(t, string(data), IgnoreFileName)
	assert.Contains(t, string(data), "prompt.md")
}

func TestVCSIgnoreFileNotDuplicatedOnSecondRun(t *testing.T) {
	dir := t.TempDir()

	_, err := New(dir, Options{OutputFilePath: "prompt.md"})
	require.NoError(t, err)
	_, err = New(dir, Options{OutputFilePath: "prompt.md"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, VCSIgnoreFileName))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "prompt.md"))
	assert.Equal(t, 1, strings.Count(string(data), IgnoreFileName))
}

func TestCustomExtensionExclusion(t *testing.T) {
	r, _ := newResolver(t, Options{FileTypeExclusions: []string{".proprietary"}})
	assert.False(t, r.Admit("model.proprietary"))
}

func TestDefaultPatternExclusion(t *testing.T) {
	r, _ := newResolver(t, Options{})
	assert.False(t, r.Admit("node_modules/pkg/index.js"))
	assert.False(t, r.Admit("a/b/node_modules/pkg/index.js"))
	assert.False(t, r.Admit("go.sum"))
	assert.True(t, r.Admit("main.go"))
}

func TestCustomPatternExclusion(t *testing.T) {
	r, _ := newResolver(t, Options{FileExclusions: []string{"*.generated.go"}})
	assert.False(t, r.Admit("models.generated.go"))
	assert.True(t, r.Admit("models.go"))
}

// TestScenarioS3 implements spec scenario S3 exactly: an ignore file
// "*.log\n!keep.log" at the root. a.log is rejected, keep.log is
// re-admitted by the negation, and sub/a.log escapes the basename-only
// rule entirely (falls through to the default admit) rather than being
// caught by depth.
func TestScenarioS3(t *testing.T) {
	r, root := newResolver(t, Options{})
	writeIgnoreFile(t, root, ".", "*.log\n!keep.log\n")
	// Clear the layer cache so the ignore file written above is the one
	// Admit loads (New() itself loads no layers).
	r.layers = map[string]*layer{}

	assert.False(t, r.Admit("a.log"))
	assert.True(t, r.Admit("keep.log"))
	assert.True(t, r.Admit("sub/a.log"))
}

func TestIgnoreMonotonicityAcrossLayers(t *testing.T) {
	// Invariant 1: a path rejected by extension or default pattern can
	// never be re-admitted by an ignore-file rule.
	r, root := newResolver(t, Options{})
	writeIgnoreFile(t, root, ".", "!logo.png\n")
	r.layers = map[string]*layer{}

	assert.False(t, r.Admit("logo.png"))
}

func TestIgnoreLastMatchWinsWithinOneFile(t *testing.T) {
	r, root := newResolver(t, Options{})
	writeIgnoreFile(t, root, ".", "*.md\n!README.md\n*.md\n")
	r.layers = map[string]*layer{}

	assert.False(t, r.Admit("README.md"), "the final *.md re-excludes it")
	assert.False(t, r.Admit("NOTES.md"))
}

func TestHierarchicalDeeperOverridesShallower(t *testing.T) {
	r, root := newResolver(t, Options{})
	writeIgnoreFile(t, root, ".", "*.txt\n")
	writeIgnoreFile(t, root, "keep", "!*.txt\n")
	r.layers = map[string]*layer{}

	assert.False(t, r.Admit("notes.txt"))
	assert.True(t, r.Admit("keep/notes.txt"))
}

func TestHierarchicalRulesScopedToSubtree(t *testing.T) {
	r, root := newResolver(t, Options{})
	writeIgnoreFile(t, root, "only-here", "local.txt\n")
	r.layers = map[string]*layer{}

	assert.True(t, r.Admit("local.txt"), "rule only applies within only-here/")
	assert.False(t, r.Admit("only-here/local.txt"))
}
