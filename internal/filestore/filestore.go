// Package filestore is the thin I/O layer shared by the editor and the
// database store. It owns no logic beyond atomic replacement of files.
package filestore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Store abstracts file access so editor and database code can be tested
// against a temp directory or a fake (DIP).
type Store interface {
	ReadText(path string) (string, error)
	WriteText(path, content string) error
	Remove(path string) error
	ListDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	EnsureDir(path string) error
	Exists(path string) bool
}

// OS implements Store on the local filesystem.
type OS struct{}

// NewOS creates a filesystem-backed Store.
func NewOS() *OS {
	return &OS{}
}

// ReadText reads a whole file as UTF-8 text.
func (OS) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText replaces path atomically: the content is written to a temp file
// in the same directory and renamed over the target. The temp name carries
// a timestamp so two writers on the same document never share a temp path.
func (OS) WriteText(path, content string) error {
	perm := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		perm = st.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	stamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"."+stamp+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	_ = tmp.Chmod(perm)

	if _, err := tmp.WriteString(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Windows refuses to rename over an existing file. Elsewhere a failed
		// rename leaves the target untouched.
		if runtime.GOOS != "windows" {
			return fmt.Errorf("rename temp file: %w", err)
		}
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}

// Remove deletes a single file. Removing a missing file is not an error.
func (OS) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ListDir returns directory entries sorted by name.
func (OS) ListDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// Stat returns file info for path.
func (OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// EnsureDir creates path and any missing parents.
func (OS) EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Exists reports whether path exists.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
