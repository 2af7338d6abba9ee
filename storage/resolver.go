package storage

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrTraversal is returned when a client-supplied path resolves outside
	// the media root. Never attempt a filesystem operation after this.
	ErrTraversal = errors.New("path escapes media root")
	// ErrInvalidPath is returned for malformed input such as embedded NUL.
	ErrInvalidPath = errors.New("invalid path")
)

// Resolve maps a client-supplied relative path to an absolute location inside
// root. It normalizes the path (collapsing "." and ".." and converting
// separators) and verifies the result still lives under the root. Pure: no
// filesystem access and no side effects.
func Resolve(root, relativePath string) (string, error) {
	if strings.ContainsRune(relativePath, 0) {
		return "", ErrInvalidPath
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", ErrInvalidPath
	}
	absRoot = filepath.Clean(absRoot)

	rel := filepath.FromSlash(relativePath)
	joined := filepath.Clean(filepath.Join(absRoot, rel))

	if joined != absRoot && !strings.HasPrefix(joined, absRoot+string(filepath.Separator)) {
		return "", ErrTraversal
	}
	return joined, nil
}

// RelativeTo converts an absolute path under root back to the slash-separated
// relative form used on the wire.
func RelativeTo(root, abs string) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	rel, err := filepath.Rel(absRoot, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	if rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
