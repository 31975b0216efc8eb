// Package clean implements the Cleaner: an ordered list of idempotent,
// purely textual transforms applied to a file's raw content. The Cleaner
// does not parse; false positives on these patterns are accepted in
// exchange for language-agnosticism, per spec.
package clean

import "regexp"

// Rule is one ordered cleaning transform: every match of Pattern is
// replaced with Replace (a regexp.ReplaceAllString template).
type Rule struct {
	Pattern *regexp.Regexp
	Replace string
}

// builtinRules are the six fixed transforms applied before any
// caller-supplied custom rules. Order matters: later patterns must not
// re-match an earlier pattern's output.
var builtinRules = []Rule{
	// 1. Single-line comments, '//' to end of line.
	{Pattern: regexp.MustCompile(`(?m)//.*$`), Replace: ""},
	// 2. Multi-line comments, non-greedy, across lines.
	{Pattern: regexp.MustCompile(`(?s)/\*.*?\*/`), Replace: ""},
	// 3. Trivial console-print statements.
	{Pattern: regexp.MustCompile(`console\.(?:log|error|warn|info)\([^)]*\);?`), Replace: ""},
	// 4. Top-of-line import statements.
	{Pattern: regexp.MustCompile(`(?m)^\s*import\s+.*;?\s*$`), Replace: ""},
	// 5. Trailing spaces.
	{Pattern: regexp.MustCompile(`(?m)[ \t]+$`), Replace: ""},
	// 6. Collapse runs of blank lines to a single newline.
	{Pattern: regexp.MustCompile(`\n{2,}`), Replace: "\n"},
}

// Clean applies the six built-in transforms followed by custom, in the
// order given. custom is typically empty; when present it is the
// caller-supplied Options.customPatterns, already compiled by
// CompileCustomRules at configuration time (a pattern that fails to
// compile is a fatal error, reported before any file is processed, never
// discovered mid-run here).
func Clean(text string, custom []Rule) string {
	for _, r := range builtinRules {
		text = r.Pattern.ReplaceAllString(text, r.Replace)
	}
	for _, r := range custom {
		text = r.Pattern.ReplaceAllString(text, r.Replace)
	}
	return text
}

// CompileCustomRules compiles caller-supplied {pattern, replacement} pairs
// in order. A compile failure here is the one fatal error condition named
// by spec's error-handling design; the caller should abort the run rather
// than proceed with a partial rule set.
func CompileCustomRules(pairs [][2]string) ([]Rule, error) {
	rules := make([]Rule, 0, len(pairs))
	for _, pair := range pairs {
		re, err := regexp.Compile(pair[0])
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{Pattern: re, Replace: pair[1]})
	}
	return rules, nil
}
