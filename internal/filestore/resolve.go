package filestore

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolve joins a slash-separated relative path onto root and rejects
// results that escape it. An empty rel resolves to root itself.
func Resolve(root, rel string) (string, error) {
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("path %q must be relative to the workspace", rel)
	}
	cleanRoot := filepath.Clean(root)
	full := filepath.Join(cleanRoot, filepath.FromSlash(rel))
	inside, err := filepath.Rel(cleanRoot, full)
	if err != nil {
		return "", fmt.Errorf("path %q: %w", rel, err)
	}
	if inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the workspace", rel)
	}
	return full, nil
}

// Relative renders full as a slash-separated path relative to root.
func Relative(root, full string) string {
	rel, err := filepath.Rel(filepath.Clean(root), full)
	if err != nil {
		return filepath.ToSlash(full)
	}
	return filepath.ToSlash(rel)
}
