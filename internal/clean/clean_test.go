package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRemovesSingleLineComments(t *testing.T) {
	out := Clean("const a = 1; // trailing note\n", nil)
	assert.NotContains(t, out, "trailing note")
	assert.Contains(t, out, "const a = 1;")
}

func TestCleanRemovesMultiLineComments(t *testing.T) {
	out := Clean("a();\n/* block\nspanning lines */\nb();\n", nil)
	assert.NotContains(t, out, "block")
	assert.Contains(t, out, "a();")
	assert.Contains(t, out, "b();")
}

func TestCleanRemovesConsolePrintStatements(t *testing.T) {
	out := Clean(`console.log("debug", x);`+"\nreal();", nil)
	assert.NotContains(t, out, "console.log")
	assert.Contains(t, out, "real();")
}

func TestCleanRemovesImportLines(t *testing.T) {
	out := Clean("import { foo } from \"bar\";\nconst x = foo();\n", nil)
	assert.NotContains(t, out, "import")
	assert.Contains(t, out, "const x = foo();")
}

func TestCleanStripsTrailingSpaces(t *testing.T) {
	out := Clean("const a = 1;   \nconst b = 2;\t\n", nil)
	assert.NotContains(t, out, "1;   \n")
	assert.NotContains(t, out, "2;\t\n")
}

func TestCleanCollapsesBlankLineRuns(t *testing.T) {
	out := Clean("a();\n\n\n\nb();\n", nil)
	assert.NotContains(t, out, "\n\n\n")
}

func TestCleanAppliesCustomRulesAfterBuiltins(t *testing.T) {
	custom, err := CompileCustomRules([][2]string{{`TODO`, "DONE"}})
	require.NoError(t, err)

	out := Clean("// TODO: fix this\nreal();\n", custom)
	// the builtin comment-stripper runs first and removes the whole line,
	// so the custom rule has nothing left to match -- demonstrating order.
	assert.NotContains(t, out, "TODO")
	assert.NotContains(t, out, "DONE")
}

func TestCleanCustomRuleAppliesWhenTextSurvivesBuiltins(t *testing.T) {
	custom, err := CompileCustomRules([][2]string{{`FIXME`, "DONE"}})
	require.NoError(t, err)

	out := Clean("const note = \"FIXME later\";\n", custom)
	assert.Contains(t, out, "DONE later")
}

func TestCleanIsIdempotent(t *testing.T) {
	input := "// note\nconst a = 1;   \n\n\n\nconsole.log(a);\nimport x from \"y\";\n/* block */\nreal();\n"
	once := Clean(input, nil)
	twice := Clean(once, nil)
	assert.Equal(t, once, twice)
}

func TestCompileCustomRulesReturnsErrorOnInvalidPattern(t *testing.T) {
	_, err := CompileCustomRules([][2]string{{`(unclosed`, "x"}})
	assert.Error(t, err)
}
