package workspace_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/docket/internal/faults"
	"github.com/HendryAvila/docket/internal/workspace"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *workspace.Store {
	t.Helper()
	s, err := workspace.New(workspace.Config{DataDir: t.TempDir(), MaxHistory: 10, MaxSummaryLength: 40})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ─── New / Initialization ───────────────────────────────────────────────────

func TestNew_CreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := workspace.New(workspace.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, workspace.DBFile)); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestNew_IdempotentReopen(t *testing.T) {
	dir := t.TempDir()
	root := t.TempDir()

	s1, err := workspace.New(workspace.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s1.Register("notes", root); err != nil {
		t.Fatalf("register: %v", err)
	}
	s1.Close()

	s2, err := workspace.New(workspace.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	w, err := s2.Resolve("notes")
	if err != nil {
		t.Fatalf("resolve after reopen: %v", err)
	}
	if w.Root != root {
		t.Errorf("root = %q, want %q", w.Root, root)
	}
}

// ─── Registry ───────────────────────────────────────────────────────────────

func TestRegister_AndResolve(t *testing.T) {
	s := newTestStore(t)
	root := t.TempDir()

	w, err := s.Register("notes", root)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if w.Name != "notes" || w.Root != root || w.CreatedAt == "" {
		t.Errorf("workspace = %+v", w)
	}

	other := t.TempDir()
	if _, err := s.Register("notes", other); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	got, err := s.Resolve("notes")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Root != other {
		t.Errorf("root after re-register = %q, want %q", got.Root, other)
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newTestStore(t)
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		ws   string
		root string
	}{
		{"empty name", "", root},
		{"name with slash", "a/b", root},
		{"leading dash", "-x", root},
		{"missing root", "ok", filepath.Join(root, "missing")},
		{"root is a file", "ok", file},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(tt.ws, tt.root)
			if faults.KindOf(err) != faults.KindInvalidParams {
				t.Errorf("err = %v, want invalid params", err)
			}
		})
	}
}

func TestResolve_ByRootPath(t *testing.T) {
	s := newTestStore(t)
	root := t.TempDir()
	if _, err := s.Register("notes", root); err != nil {
		t.Fatal(err)
	}

	w, err := s.Resolve(root + string(filepath.Separator))
	if err != nil {
		t.Fatalf("Resolve by path: %v", err)
	}
	if w.Name != "notes" {
		t.Errorf("name = %q, want notes", w.Name)
	}
}

func TestResolve_UnknownListsAlternatives(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"beta", "alpha"} {
		if _, err := s.Register(name, t.TempDir()); err != nil {
			t.Fatal(err)
		}
	}

	_, err := s.Resolve("gamma")
	if faults.KindOf(err) != faults.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
	if !strings.Contains(err.Error(), "Available: alpha, beta") {
		t.Errorf("error should list workspaces: %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	root := t.TempDir()
	if _, err := s.Register("notes", root); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Record(workspace.Edit{Workspace: "notes", Tool: "content_insert", Target: "a.md", Summary: "x", Success: true}); err != nil {
		t.Fatal(err)
	}

	if err := s.Remove("notes"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	list, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("list = %+v, want empty", list)
	}
	history, err := s.History(workspace.HistoryOptions{Workspace: "notes"})
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Errorf("history should be dropped, got %d entries", len(history))
	}
	if _, err := os.Stat(root); err != nil {
		t.Errorf("root directory must survive: %v", err)
	}

	if err := s.Remove("notes"); faults.KindOf(err) != faults.KindNotFound {
		t.Errorf("second Remove err = %v, want not found", err)
	}
}

func TestSync(t *testing.T) {
	s := newTestStore(t)
	roots := map[string]string{"a": t.TempDir(), "b": t.TempDir()}
	if err := s.Sync(roots); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	list, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Name != "a" || list[1].Name != "b" {
		t.Errorf("list = %+v", list)
	}

	if err := s.Sync(map[string]string{"bad": "/definitely/not/here"}); err == nil {
		t.Error("Sync with a missing root should fail")
	}
}

func TestRegister_ExecFailure(t *testing.T) {
	s := newTestStore(t)
	s.FailExec(errors.New("disk full"))

	_, err := s.Register("notes", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("err = %v, want wrapped exec failure", err)
	}
}

// ─── Journal ────────────────────────────────────────────────────────────────

func TestHistory_RecentFirst(t *testing.T) {
	s := newTestStore(t)
	edits := []workspace.Edit{
		{Workspace: "notes", Tool: "content_insert", Target: "a.md", Summary: "inserted intro paragraph", Success: true},
		{Workspace: "notes", Tool: "content_replace", Target: "b.md", Summary: "search text not found", Success: false},
		{Workspace: "work", Tool: "db_add_rows", Target: "tasks", Summary: "added 2 rows", Success: true},
	}
	for _, e := range edits {
		if _, err := s.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := s.History(workspace.HistoryOptions{Workspace: "notes"})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 || got[0].Target != "b.md" || got[1].Target != "a.md" {
		t.Fatalf("history = %+v", got)
	}
	if got[0].Success || !got[1].Success {
		t.Errorf("success flags not preserved: %+v", got)
	}

	byTarget, err := s.History(workspace.HistoryOptions{Target: "tasks"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byTarget) != 1 || byTarget[0].Workspace != "work" {
		t.Errorf("by target = %+v", byTarget)
	}
}

func TestHistory_Search(t *testing.T) {
	s := newTestStore(t)
	for _, summary := range []string{"inserted intro paragraph", "replaced the intro", "deleted footer"} {
		if _, err := s.Record(workspace.Edit{Workspace: "notes", Tool: "content_insert", Target: "a.md", Summary: summary, Success: true}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.History(workspace.HistoryOptions{Query: `intro"`})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("matches = %d, want 2", len(got))
	}
}

func TestHistory_LimitAndTruncation(t *testing.T) {
	s := newTestStore(t)
	long := strings.Repeat("x", 100)
	for i := 0; i < 15; i++ {
		if _, err := s.Record(workspace.Edit{Workspace: "w", Tool: "t", Target: "f", Summary: long, Success: true}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.History(workspace.HistoryOptions{Limit: 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 10 {
		t.Errorf("len = %d, want capped at 10", len(got))
	}
	if got[0].Summary != strings.Repeat("x", 40)+"..." {
		t.Errorf("summary not truncated: %q", got[0].Summary)
	}
}

func TestSanitizeFTS(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  ", ""},
		{"intro", `"intro"`},
		{`a "b" OR c`, `"a" "b" "OR" "c"`},
		{`"`, ""},
	}
	for _, tt := range tests {
		if got := workspace.SanitizeFTS(tt.in); got != tt.want {
			t.Errorf("sanitizeFTS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
