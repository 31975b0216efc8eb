// Package redact implements the Redactor: eight ordered secret-matching
// patterns followed by a post-pass line filter that drops lines whose
// value has been entirely swallowed by a sentinel, so a secret-only
// assignment disappears instead of leaving a noisy stub behind. None of the
// built-in patterns matches a PEM private-key block
// (-----BEGIN ... PRIVATE KEY-----).
package redact

import (
	"regexp"
	"strings"
)

const (
	SentinelGeneric = "[REDACTED]"
	SentinelJWT     = "[REDACTED_JWT]"
	SentinelHash    = "[REDACTED_HASH]"
	SentinelBase64  = "[REDACTED_BASE64]"
)

// sensitiveKeys backs both the JSON/object form and the assignment form:
// a known key name that, however it is written, flags its value as a
// secret.
const sensitiveKeys = `api_key|api-secret|access_token|auth_token|client_secret|password|secret_key|private_key|jwt_secret|stripe_key|secret`

// sensitiveEnvKeys backs the shell/env form: the uppercase family of
// environment variable names treated as secret-bearing.
const sensitiveEnvKeys = `API_KEY|AWS_SECRET_ACCESS_KEY|DATABASE_URL|MONGO_URI|SECRET_KEY|ACCESS_TOKEN|AUTH_TOKEN|CLIENT_SECRET|PRIVATE_KEY|JWT_SECRET|STRIPE_KEY|PASSWORD|TOKEN|SECRET`

// Rule is one ordered redaction pattern.
type Rule struct {
	Pattern *regexp.Regexp
	Replace string
}

// builtinRules runs in the fixed order spec requires: later patterns
// observe already-redacted text, so ordering is part of the contract, not
// an implementation detail.
var builtinRules = []Rule{
	// 1. JSON/object form: "key": "value" (len >= 3).
	{
		Pattern: regexp.MustCompile(`(?i)"(` + sensitiveKeys + `)"\s*:\s*"([^"]{3,})"`),
		Replace: `"$1": "` + SentinelGeneric + `"`,
	},
	// 2. JWT anywhere inside quotes.
	{
		Pattern: regexp.MustCompile(`(["'])(eyJ[A-Za-z0-9_=-]+\.[A-Za-z0-9_=-]+\.[A-Za-z0-9_./+=-]*)["']`),
		Replace: `$1` + SentinelJWT + `$1`,
	},
	// 3. Assignment form: key = "value" / key = 'value'.
	{
		Pattern: regexp.MustCompile(`(?i)\b(\w*(?:` + sensitiveKeys + `)\w*)\s*=\s*(["'])([^"']{3,})["']`),
		Replace: `$1 = $2` + SentinelGeneric + `$2`,
	},
	// 4. Shell/env form: (export )?KEY=value, canonicalized with quotes dropped.
	{
		Pattern: regexp.MustCompile(`(?m)^(\s*(?:export\s+)?(?:` + sensitiveEnvKeys + `))\s*=\s*(?:"[^"]{3,}"|'[^']{3,}'|[^\s#]{3,})\s*$`),
		Replace: `$1=` + SentinelGeneric,
	},
	// 5. Bearer tokens.
	{
		Pattern: regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9._~+/-]+=*)`),
		Replace: `${1}` + SentinelGeneric,
	},
	// 6. Hex hashes, exactly 40 or 64 characters, word-bounded.
	{
		Pattern: regexp.MustCompile(`\b[a-fA-F0-9]{64}\b|\b[a-fA-F0-9]{40}\b`),
		Replace: SentinelHash,
	},
	// 7. Base64-like quoted literals.
	{
		Pattern: regexp.MustCompile(`(["'])([A-Za-z0-9+/]{40,}={0,2})["']`),
		Replace: `$1` + SentinelBase64 + `$1`,
	},
	// 8. YAML/TOML form: key: value (unquoted).
	{
		Pattern: regexp.MustCompile(`(?mi)^(\s*(?:` + sensitiveKeys + `)\s*:\s*).+$`),
		Replace: `${1}` + SentinelGeneric,
	},
}

// bareSentinelLine matches a line consisting of nothing but whitespace and
// one or more sentinel tokens (invariant 9, verbatim).
var bareSentinelLine = regexp.MustCompile(`^\s*(?:\[REDACTED(?:_[A-Z]+)?\]\s*)+$`)

// assignmentSentinelLine matches a declaration/assignment line whose value
// has been entirely replaced by a sentinel, e.g.
// `const password = "[REDACTED]";` -- the surrounding
// keyword/identifier/punctuation carries no value of its own once the
// secret is gone. The line must start with a declaration keyword (const,
// let, var, ...), so a shell/env line such as `API_KEY=[REDACTED]` is kept.
var assignmentSentinelLine = regexp.MustCompile(
	`^\s*(?:export\s+)?(?:const|let|var|public|private|readonly|static)\s+[\w.\-]*\s*[:=]\s*["']?\[REDACTED(?:_[A-Z]+)?\]["']?\s*[;,]?\s*$`,
)

// Redact applies the eight built-in patterns followed by custom rules, in
// order, then drops any line whose value has been entirely swallowed by a
// sentinel. It returns the redacted text and the number of pattern matches
// replaced (not counting lines subsequently dropped).
func Redact(text string, custom []Rule) (string, int) {
	redactions := 0
	for _, r := range builtinRules {
		redactions += countMatches(r.Pattern, text)
		text = r.Pattern.ReplaceAllString(text, r.Replace)
	}
	for _, r := range custom {
		redactions += countMatches(r.Pattern, text)
		text = r.Pattern.ReplaceAllString(text, r.Replace)
	}

	text = filterSentinelOnlyLines(text)
	return text, redactions
}

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

func filterSentinelOnlyLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if bareSentinelLine.MatchString(line) || assignmentSentinelLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// CompileCustomRules compiles caller-supplied {pattern, replacement} pairs
// in order. A compile failure is spec's one fatal error condition; the
// caller aborts the run rather than proceeding with a partial rule set.
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
