package server

import (
	"io"
	"log/slog"
	"testing"

	"github.com/HendryAvila/docket/internal/config"
	"github.com/HendryAvila/docket/internal/tools"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Workspaces = map[string]string{"notes": t.TempDir()}
	return cfg
}

func TestNew(t *testing.T) {
	s, cleanup, err := New(testConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()
	if s == nil {
		t.Fatal("server is nil")
	}
}

func TestNew_BadWorkspaceRoot(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workspaces["broken"] = "/definitely/not/here"

	_, cleanup, err := New(cfg, nil)
	cleanup()
	if err == nil {
		t.Fatal("expected error for missing workspace root")
	}
}

func TestTools_UniqueNames(t *testing.T) {
	all := Tools(tools.NewEnv(nil, nil, nil, nil, nil))
	if len(all) != 20 {
		t.Errorf("tools = %d, want 20", len(all))
	}

	seen := map[string]bool{}
	for _, tool := range all {
		name := tool.Definition().Name
		if seen[name] {
			t.Errorf("duplicate tool name %q", name)
		}
		seen[name] = true
	}
	for _, want := range []string{"content_insert", "db_read", "db_set_default_view", "workspace_list", "edit_history"} {
		if !seen[want] {
			t.Errorf("missing tool %q", want)
		}
	}
}
