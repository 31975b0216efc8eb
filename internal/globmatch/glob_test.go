package globmatch

import "testing"

func TestMatchConformance(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		// Literal matching.
		{"literal exact", "main.go", "main.go", true},
		{"literal mismatch", "main.go", "other.go", false},

		// '?' matches exactly one non-slash character.
		{"question mark matches one char", "fil?.go", "file.go", true},
		{"question mark rejects two chars", "fil?.go", "fille.go", false},
		{"question mark never crosses slash", "a?b", "a/b", false},

		// '*' matches zero or more non-slash characters.
		{"star matches suffix", "*.log", "debug.log", true},
		{"star does not match empty before leading dot", "*.log", ".log", false}, // leading dot excluded by default
		{"star never crosses slash", "*.log", "sub/debug.log", false},
		{"star matches middle", "a*z", "abcxyz", true},

		// dot option.
		{"star excludes leading dot by default", "*", ".hidden", false},
		{"star pattern starting with dot matches leading dot", ".*", ".hidden", true},
		{"dotfile pattern matches exactly", ".env", ".env", true},

		// '**' at head: any depth including zero.
		{"doublestar head matches zero depth", "**/foo.go", "foo.go", true},
		{"doublestar head matches one level", "**/foo.go", "a/foo.go", true},
		{"doublestar head matches many levels", "**/foo.go", "a/b/c/foo.go", true},

		// '**' at tail: all descendants, not the dir itself.
		{"doublestar tail matches child", "build/**", "build/out.bin", true},
		{"doublestar tail matches nested child", "build/**", "build/a/out.bin", true},
		{"doublestar tail does not match dir itself", "build/**", "build", false},

		// bare '**' in the middle, equivalent to '**/'.
		{"doublestar middle matches zero segments", "a/**/b", "a/b", true},
		{"doublestar middle matches one segment", "a/**/b", "a/x/b", true},
		{"doublestar middle matches many segments", "a/**/b", "a/x/y/b", true},

		// brace alternation.
		{"brace matches first alt", "*.{ts,tsx}", "index.ts", true},
		{"brace matches second alt", "*.{ts,tsx}", "index.tsx", true},
		{"brace rejects non-member", "*.{ts,tsx}", "index.js", false},

		// character classes.
		{"class matches member", "file[123].go", "file1.go", true},
		{"class rejects non-member", "file[123].go", "file4.go", false},
		{"class range matches", "[a-z]og.go", "log.go", true},
		{"class range rejects", "[a-z]og.go", "Log.go", false},
		{"negated class rejects member", "file[!123].go", "file1.go", false},
		{"negated class matches non-member", "file[!123].go", "file4.go", true},
		{"literal close bracket first in class", "[]a].go", "].go", true},

		// trailing '/' directory patterns: match the dir itself (as an
		// ancestor prefix) and everything under it.
		{"dir pattern matches nested file", "node_modules/", "node_modules/pkg/index.js", true},
		{"dir pattern matches direct child", "node_modules/", "node_modules/index.js", true},
		{"dir pattern does not match sibling prefix", "node_modules/", "node_modules_extra/index.js", false},
		{"dir pattern at nested depth", "**/node_modules/", "a/b/node_modules/x.js", true},

		// basename-only invariant: a pattern with no '/' never matches a
		// path containing one.
		{"basename pattern matches top-level", "*.log", "a.log", true},
		{"basename pattern rejects nested path", "*.log", "sub/a.log", false},
		{"basename negation also basename-only", "!keep.log", "sub/keep.log", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Compile(c.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", c.pattern, err)
			}
			got := p.Match(c.path)
			if got != c.want {
				t.Errorf("Compile(%q).Match(%q) = %v, want %v", c.pattern, c.path, got, c.want)
			}
		})
	}
}

func TestNegatedFlag(t *testing.T) {
	p, err := Compile("!keep.log")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Negated() {
		t.Error("expected Negated() to be true for a '!'-prefixed pattern")
	}
	if !p.Match("keep.log") {
		t.Error("expected the underlying glob body to still match, independent of polarity")
	}
}

func TestDirOnlyFlag(t *testing.T) {
	p, err := Compile("dist/")
	if err != nil {
		t.Fatal(err)
	}
	if !p.DirOnly() {
		t.Error("expected DirOnly() to be true for a trailing-slash pattern")
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []string{
		"",
		"!",
		"a/[abc",
		"a/{foo,bar",
	}
	for _, p := range cases {
		if _, err := Compile(p); err == nil {
			t.Errorf("Compile(%q) expected an error, got nil", p)
		}
	}
}
