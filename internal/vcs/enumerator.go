// Package vcs implements the Enumerator: the sole collaborator that knows
// how to ask version control for the set of tracked paths under a root.
package vcs

import (
	"os/exec"
	"sort"
	"strings"
)

// Enumerate returns the paths git reports as tracked under root, relative
// to root, forward-slash separated, sorted lexicographically for
// determinism. If git is missing or root is not a repository, it returns
// an empty slice and no error -- tracked-only semantics mean an
// unavailable collaborator simply yields nothing, never a fatal condition.
//
// "-z" NUL-separates the output so tracked paths containing newlines are
// not corrupted by line-splitting.
func Enumerate(root string) []string {
	cmd := exec.Command("git", "ls-files", "-z")
	cmd.Dir = root

	output, err := cmd.Output()
	if err != nil {
		return []string{}
	}

	raw := strings.Split(string(output), "\x00")
	paths := make([]string, 0, len(raw))
	for _, p := range raw {
		if p == "" {
			continue
		}
		paths = append(paths, filepathToSlash(p))
	}

	sort.Strings(paths)
	return paths
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
