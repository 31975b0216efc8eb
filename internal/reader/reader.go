// Package reader implements the Reader stage: loads a file's bytes and
// decodes it as UTF-8, repairing invalid sequences rather than failing.
package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Read loads the file at root/relPath and returns its content decoded as
// UTF-8, with any invalid byte sequence replaced by the Unicode
// replacement character. Read failures are returned as an error so the
// caller can record a soft per-file skip and continue; this function never
// panics and never treats a read failure as fatal to the run.
func Read(root, relPath string) (string, error) {
	full := filepath.Join(root, filepath.FromSlash(relPath))

	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", relPath, err)
	}

	return toValidUTF8(data), nil
}

// toValidUTF8 returns s decoded as UTF-8, with invalid sequences replaced.
// strings.ToValidUTF8 with a single replacement-character rune achieves the
// same repair utf8.DecodeRune would perform byte-by-byte, without the
// manual decode loop.
func toValidUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
