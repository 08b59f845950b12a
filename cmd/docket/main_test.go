package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/docket/internal/config"
)

// run executes the CLI with an isolated config and data dir.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv(config.EnvDataDir, dataDir)
	t.Setenv(config.EnvLogLevel, "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWorkspaceCommands(t *testing.T) {
	data := t.TempDir()
	root := t.TempDir()

	if _, err := run(t, data, "workspace", "add", "notes", root); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := run(t, data, "workspace", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "notes") || !strings.Contains(out, root) {
		t.Errorf("list output = %q", out)
	}

	if _, err := run(t, data, "workspace", "remove", "notes"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	out, _ = run(t, data, "workspace", "list")
	if !strings.Contains(out, "No workspaces registered") {
		t.Errorf("list after remove = %q", out)
	}
}

func TestWorkspaceAdd_RejectsMissingDir(t *testing.T) {
	if _, err := run(t, t.TempDir(), "workspace", "add", "notes", "/no/such/dir"); err == nil {
		t.Fatal("expected error")
	}
}

func TestHistory_Empty(t *testing.T) {
	out, err := run(t, t.TempDir(), "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No edits recorded") {
		t.Errorf("output = %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "docket v") {
		t.Errorf("output = %q", out)
	}
}
