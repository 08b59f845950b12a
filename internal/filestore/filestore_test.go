package filestore

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestWriteText_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes", "doc.md")
	fs := NewOS()

	if err := fs.WriteText(path, "first"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if err := fs.WriteText(path, "second"); err != nil {
		t.Fatalf("WriteText (replace): %v", err)
	}

	got, err := fs.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}
}

func TestWriteText_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	fs := NewOS()

	for i := 0; i < 3; i++ {
		if err := fs.WriteText(path, strings.Repeat("x", i+1)); err != nil {
			t.Fatalf("WriteText: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want only doc.md", names)
	}
}

func TestWriteText_PreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := NewOS().WriteText(path, "y"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", st.Mode().Perm())
	}
}

func TestRemove_MissingIsNotError(t *testing.T) {
	if err := NewOS().Remove(filepath.Join(t.TempDir(), "nope.md")); err != nil {
		t.Errorf("Remove missing file: %v", err)
	}
}

func TestWriteText_FailedRenameKeepsTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows replaces the target by removing it first")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := NewOS().WriteText(target, "x"); err == nil {
		t.Fatal("expected error writing over a directory")
	}
	st, err := os.Stat(target)
	if err != nil || !st.IsDir() {
		t.Errorf("target should still be a directory, stat err = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("entries = %d, want only the target (temp file cleaned up)", len(entries))
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name    string
		rel     string
		want    string
		wantErr bool
	}{
		{"empty is root", "", root, false},
		{"nested", "projects/tasks", filepath.Join(root, "projects", "tasks"), false},
		{"dot segments inside", "a/../b", filepath.Join(root, "b"), false},
		{"escape", "../outside", "", true},
		{"deep escape", "a/../../outside", "", true},
		{"absolute", "/etc/passwd", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(root, tt.rel)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Resolve(%q) = %q, want error", tt.rel, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.rel, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

func TestRelative(t *testing.T) {
	root := t.TempDir()
	got := Relative(root, filepath.Join(root, "tasks", "fix-bug.md"))
	if got != "tasks/fix-bug.md" {
		t.Errorf("Relative = %q, want %q", got, "tasks/fix-bug.md")
	}
}
