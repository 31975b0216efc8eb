// Package ignore implements the Exclusion Resolver: a four-layer admit
// predicate composing a fixed extension set, a flat default/custom glob
// pattern set, hierarchical per-directory ignore files, and a root
// ignore-file existence guarantee.
//
// Every layer -- flat and hierarchical alike -- is matched through the same
// internal/globmatch compiler, deliberately, so that a pattern's
// basename-only behavior never depends on which layer evaluates it.
package ignore

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/toak-dev/toak/internal/globmatch"
)

// IgnoreFileName is the hierarchical ignore file's name, searched for in
// every ancestor directory of a candidate path.
const IgnoreFileName = ".toak-ignore"

// VCSIgnoreFileName is the repository's own ignore file. The resolver
// appends entries to it so the ignore file and the assembled output
// artifact are never committed by accident.
const VCSIgnoreFileName = ".gitignore"

// Options configures a Resolver beyond the built-in defaults.
type Options struct {
	// FileTypeExclusions are additional extensions (with leading dot,
	// lowercase) rejected by layer 1.
	FileTypeExclusions []string

	// FileExclusions are additional glob patterns appended to layer 2.
	FileExclusions []string

	// OutputFilePath is the path (relative to root) the assembled document
	// is written to. It is appended to the repository's VCS-ignore file
	// alongside IgnoreFileName so neither artifact is accidentally
	// committed.
	OutputFilePath string
}

// rule is one compiled line from an ignore file.
type rule struct {
	pattern *globmatch.Pattern
}

// layer is the set of rules contributed by one directory's ignore file.
type layer struct {
	dir   string // relative to root, "." for the root itself
	rules []rule
}

// Resolver is the built admit(path) predicate together with its lazily
// loaded hierarchical ignore layers.
type Resolver struct {
	root       string
	extensions map[string]struct{}
	patterns   []*globmatch.Pattern

	mu     sync.Mutex
	layers map[string]*layer // nil value cached for "no ignore file here"
}

// New validates options, compiles the flat layers, and ensures the root
// ignore file exists and the repository's own VCS-ignore file carries
// entries for it and for the output artifact (the resolver's two permitted
// mutations). root is an absolute filesystem path; paths passed to Admit
// are relative to it.
func New(root string, opts Options) (*Resolver, error) {
	extensions := make(map[string]struct{}, len(DefaultExtensions)+len(opts.FileTypeExclusions))
	for _, ext := range DefaultExtensions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}
	for _, ext := range opts.FileTypeExclusions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}

	rawPatterns := make([]string, 0, len(DefaultPatterns)+len(opts.FileExclusions))
	rawPatterns = append(rawPatterns, DefaultPatterns...)
	rawPatterns = append(rawPatterns, opts.FileExclusions...)

	patterns := make([]*globmatch.Pattern, 0, len(rawPatterns))
	for _, raw := range rawPatterns {
		if !doublestar.ValidatePattern(strings.TrimSuffix(strings.TrimPrefix(raw, "!"), "/")) {
			return nil, fmt.Errorf("ignore: invalid pattern %q", raw)
		}
		p, err := globmatch.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("ignore: compiling default/custom pattern: %w", err)
		}
		patterns = append(patterns, p)
	}

	r := &Resolver{
		root:       root,
		extensions: extensions,
		patterns:   patterns,
		layers:     make(map[string]*layer),
	}

	if err := r.ensureRootIgnoreFile(); err != nil {
		return nil, err
	}

	if err := r.ensureVCSIgnoreEntries(opts.OutputFilePath); err != nil {
		return nil, err
	}

	return r, nil
}

// Admit reports whether path (relative to root, forward-slash normalized)
// survives all four exclusion layers.
func (r *Resolver) Admit(path string) bool {
	if r.rejectedByExtension(path) {
		return false
	}
	if r.rejectedByPattern(path) {
		return false
	}
	if r.rejectedByIgnoreFiles(path) {
		return false
	}
	return true
}

func (r *Resolver) rejectedByExtension(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return false
	}
	_, excluded := r.extensions[ext]
	return excluded
}

func (r *Resolver) rejectedByPattern(p string) bool {
	for _, pat := range r.patterns {
		if pat.Match(p) {
			return true
		}
	}
	return false
}

// rejectedByIgnoreFiles evaluates layer 3: every ancestor directory's
// ignore file, root-first, with the last matching rule overall (deeper
// files naturally sort after shallower ones) deciding the verdict.
func (r *Resolver) rejectedByIgnoreFiles(p string) bool {
	dirs := ancestorDirs(p)

	excluded := false
	for _, dir := range dirs {
		l := r.loadLayer(dir)
		if l == nil {
			continue
		}
		rel := relativeToLayer(p, dir)
		for _, rl := range l.rules {
			if rl.pattern.Match(rel) {
				excluded = !rl.pattern.Negated()
			}
		}
	}
	return excluded
}

// ancestorDirs returns the ancestor directories of p (root-first), "."
// standing for the repository root itself. The file's own leaf name is not
// included as a directory.
func ancestorDirs(p string) []string {
	dir := path.Dir(p)
	if dir == "." {
		return []string{"."}
	}
	parts := strings.Split(dir, "/")
	dirs := make([]string, 0, len(parts)+1)
	dirs = append(dirs, ".")
	for i := range parts {
		dirs = append(dirs, strings.Join(parts[:i+1], "/"))
	}
	return dirs
}

// relativeToLayer returns p relative to the ignore file's own directory,
// which is what its rules are written against.
func relativeToLayer(p, dir string) string {
	if dir == "." {
		return p
	}
	return strings.TrimPrefix(p, dir+"/")
}

// loadLayer lazily loads and caches the ignore file at root/dir/IgnoreFileName.
// A cached nil means "checked, no ignore file there" -- double loads are
// idempotent per spec's concurrency model.
func (r *Resolver) loadLayer(dir string) *layer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.layers[dir]; ok {
		return l
	}

	full := r.root
	if dir != "." {
		full = path.Join(r.root, dir)
	}
	filePath := path.Join(full, IgnoreFileName)

	data, err := os.ReadFile(filePath)
	if err != nil {
		r.layers[dir] = nil
		return nil
	}

	l := &layer{dir: dir, rules: parseIgnoreFile(data)}
	r.layers[dir] = l
	return l
}

// parseIgnoreFile compiles each non-blank, non-comment line into a rule. A
// line that fails to compile is skipped rather than aborting the run --
// only a caller-supplied custom pattern is a fatal configuration error per
// spec's error taxonomy; a malformed line in a discovered ignore file is
// not caller-supplied.
func parseIgnoreFile(data []byte) []rule {
	lines := strings.Split(string(data), "\n")
	rules := make([]rule, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := globmatch.Compile(line)
		if err != nil {
			continue
		}
		rules = append(rules, rule{pattern: p})
	}
	return rules
}

// ensureRootIgnoreFile creates the root ignore file with the minimum line
// set if it does not already exist.
func (r *Resolver) ensureRootIgnoreFile() error {
	filePath := path.Join(r.root, IgnoreFileName)
	if _, err := os.Stat(filePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("ignore: statting root ignore file: %w", err)
	}

	content := strings.Join(RootIgnoreDefaultLines, "\n") + "\n"
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("ignore: creating root ignore file: %w", err)
	}
	return nil
}

// ensureVCSIgnoreEntries appends IgnoreFileName and outputFilePath to the
// repository's VCS-ignore file, creating it if absent, so that neither the
// ignore file nor the generated document is ever picked up by an accidental
// commit. Entries already present (by exact line match) are left alone;
// the file is otherwise only ever appended to, never rewritten, so a
// caller's existing patterns and comments are undisturbed.
func (r *Resolver) ensureVCSIgnoreEntries(outputFilePath string) error {
	wanted := []string{IgnoreFileName}
	if outputFilePath != "" {
		wanted = append(wanted, outputFilePath)
	}

	filePath := path.Join(r.root, VCSIgnoreFileName)
	data, err := os.ReadFile(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ignore: reading VCS ignore file: %w", err)
	}

	existing := make(map[string]struct{})
	for _, line := range strings.Split(string(data), "\n") {
		existing[strings.TrimSpace(line)] = struct{}{}
	}

	var toAppend []string
	for _, w := range wanted {
		if _, ok := existing[w]; !ok {
			toAppend = append(toAppend, w)
		}
	}
	if len(toAppend) == 0 {
		return nil
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += strings.Join(toAppend, "\n") + "\n"

	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("ignore: updating VCS ignore file: %w", err)
	}
	return nil
}
