package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
	"github.com/HendryAvila/docket/internal/editor"
	"github.com/HendryAvila/docket/internal/filestore"
	"github.com/HendryAvila/docket/internal/logging"
	"github.com/HendryAvila/docket/internal/workspace"
)

// --- Test helpers ---

type handler interface {
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// testEnv wires an Env against a real registry in a temp dir and a single
// workspace named "notes".
func testEnv(t *testing.T) (*Env, *workspace.Store, string) {
	t.Helper()
	store, err := workspace.New(workspace.Config{DataDir: t.TempDir(), MaxHistory: 50, MaxSummaryLength: 200})
	if err != nil {
		t.Fatalf("setup: workspace store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	root := t.TempDir()
	if _, err := store.Register("notes", root); err != nil {
		t.Fatalf("setup: register: %v", err)
	}

	fs := filestore.NewOS()
	env := NewEnv(
		store,
		store,
		editor.New(fs),
		database.NewStore(fs),
		logging.New(io.Discard, slog.LevelDebug, true, true),
	)
	return env, store, root
}

func call(t *testing.T, h handler, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := h.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

// callJSON calls h and decodes a successful result.
func callJSON(t *testing.T, h handler, args map[string]interface{}) map[string]any {
	t.Helper()
	result := call(t, h, args)
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(getResultText(result)), &out); err != nil {
		t.Fatalf("result is not JSON: %v\n%s", err, getResultText(result))
	}
	return out
}

// isErrorResult checks if a CallToolResult represents an error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func history(t *testing.T, store *workspace.Store) []workspace.Edit {
	t.Helper()
	edits, err := store.History(workspace.HistoryOptions{Workspace: "notes"})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	return edits
}

// --- Workspace resolution ---

func TestResolveTarget_UnknownWorkspaceListsAlternatives(t *testing.T) {
	env, _, _ := testEnv(t)

	result := call(t, NewContentReadTool(env), map[string]interface{}{
		"workspace": "nope",
		"path":      "a.md",
	})
	if !isErrorResult(result) {
		t.Fatal("expected error result")
	}
	if text := getResultText(result); !strings.Contains(text, "notes") {
		t.Errorf("error should list available workspaces, got: %s", text)
	}
}

func TestResolveTarget_ByRootPath(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "a.md", "hello")

	out := callJSON(t, NewContentReadTool(env), map[string]interface{}{
		"workspace": root,
		"path":      "a.md",
	})
	if out["content"] != "hello" {
		t.Errorf("content = %v", out["content"])
	}
}

func TestResolveTarget_RejectsEscape(t *testing.T) {
	env, _, _ := testEnv(t)

	for _, p := range []string{"../outside.md", "/etc/passwd"} {
		result := call(t, NewContentReadTool(env), map[string]interface{}{
			"workspace": "notes",
			"path":      p,
		})
		if !isErrorResult(result) {
			t.Errorf("path %q should be rejected", p)
		}
	}
}

func TestResolveTarget_MissingArgs(t *testing.T) {
	env, _, _ := testEnv(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"no workspace", map[string]interface{}{"path": "a.md"}, "workspace"},
		{"no path", map[string]interface{}{"workspace": "notes"}, "path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := call(t, NewContentReadTool(env), tt.args)
			if !isErrorResult(result) {
				t.Fatal("expected error result")
			}
			if !strings.Contains(getResultText(result), tt.want) {
				t.Errorf("error %q should mention %q", getResultText(result), tt.want)
			}
		})
	}
}

// --- Content tools ---

func TestContentRead_NotFound(t *testing.T) {
	env, _, _ := testEnv(t)

	result := call(t, NewContentReadTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "missing.md",
	})
	if !isErrorResult(result) {
		t.Fatal("expected error result for missing document")
	}
}

func TestContentRead_LineNumbers(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "doc.md", "one\ntwo")

	out := callJSON(t, NewContentReadTool(env), map[string]interface{}{
		"workspace":    "notes",
		"path":         "doc.md",
		"line_numbers": true,
	})
	if out["lines"] != float64(2) {
		t.Errorf("lines = %v, want 2", out["lines"])
	}
	if numbered, _ := out["numbered"].(string); !strings.Contains(numbered, "two") {
		t.Errorf("numbered = %q", numbered)
	}
}

func TestContentLocate(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "doc.md", "alpha beta alpha")

	out := callJSON(t, NewContentLocateTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"text":      "alpha",
	})
	if out["count"] != float64(2) {
		t.Fatalf("count = %v, want 2", out["count"])
	}
	occ := out["occurrences"].([]any)
	if second := occ[1].(map[string]any); second["start"] != float64(11) {
		t.Errorf("second start = %v, want 11", second["start"])
	}
}

func TestContentInsert_AppendsAndJournals(t *testing.T) {
	env, store, root := testEnv(t)
	path := writeFile(t, root, "doc.md", "body")

	out := callJSON(t, NewContentInsertTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"text":      "tail",
	})
	if out["success"] != true {
		t.Fatalf("expected success, got %v", out)
	}
	if got := readFile(t, path); got != "body\n\ntail" {
		t.Errorf("content = %q", got)
	}

	edits := history(t, store)
	if len(edits) != 1 || edits[0].Tool != "content_insert" || !edits[0].Success || edits[0].Target != "doc.md" {
		t.Errorf("journal = %+v", edits)
	}
}

func TestContentInsert_OffsetFromString(t *testing.T) {
	env, _, root := testEnv(t)
	path := writeFile(t, root, "doc.md", "hello world")

	callJSON(t, NewContentInsertTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"text":      ",",
		"position":  "5",
	})
	if got := readFile(t, path); got != "hello, world" {
		t.Errorf("content = %q", got)
	}
}

func TestContentInsert_LineMismatchIsSoftFailure(t *testing.T) {
	env, store, root := testEnv(t)
	path := writeFile(t, root, "doc.md", "A\nB\nC")

	out := callJSON(t, NewContentInsertTool(env), map[string]interface{}{
		"workspace":            "notes",
		"path":                 "doc.md",
		"text":                 "X",
		"position":             "4",
		"expected_line_before": "A",
	})
	if out["success"] != false || out["reason"] != "line_mismatch" {
		t.Errorf("result = %v", out)
	}
	if got := readFile(t, path); got != "A\nB\nC" {
		t.Errorf("document modified: %q", got)
	}

	edits := history(t, store)
	if len(edits) != 1 || edits[0].Success {
		t.Errorf("rejected insert should be journaled with success=false, got %+v", edits)
	}
}

func TestContentInsert_BadPosition(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "doc.md", "x")

	result := call(t, NewContentInsertTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"text":      "y",
		"position":  "middle",
	})
	if !isErrorResult(result) {
		t.Fatal("expected error result for bad position")
	}
}

func TestContentDelete(t *testing.T) {
	env, _, root := testEnv(t)
	path := writeFile(t, root, "doc.md", "keep drop keep")

	out := callJSON(t, NewContentDeleteTool(env), map[string]interface{}{
		"workspace":        "notes",
		"path":             "doc.md",
		"start":            float64(4),
		"end":              float64(9),
		"expected_content": "drop",
	})
	if out["success"] != true {
		t.Fatalf("expected success, got %v", out)
	}
	if got := readFile(t, path); got != "keep keep" {
		t.Errorf("content = %q", got)
	}
}

func TestContentDelete_Mismatch(t *testing.T) {
	env, _, root := testEnv(t)
	path := writeFile(t, root, "doc.md", "keep drop keep")

	out := callJSON(t, NewContentDeleteTool(env), map[string]interface{}{
		"workspace":        "notes",
		"path":             "doc.md",
		"start":            float64(0),
		"end":              float64(4),
		"expected_content": "drop",
	})
	if out["success"] != false || out["reason"] != "content_mismatch" {
		t.Errorf("result = %v", out)
	}
	if len(out["occurrences"].([]any)) != 1 {
		t.Errorf("occurrences = %v, want the one real location", out["occurrences"])
	}
	if got := readFile(t, path); got != "keep drop keep" {
		t.Errorf("document modified: %q", got)
	}
}

func TestContentDelete_RequiresRange(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "doc.md", "abc")

	result := call(t, NewContentDeleteTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"start":     float64(0),
	})
	if !isErrorResult(result) || !strings.Contains(getResultText(result), "end") {
		t.Errorf("expected error about 'end', got %q", getResultText(result))
	}
}

func TestContentReplace(t *testing.T) {
	env, _, root := testEnv(t)
	path := writeFile(t, root, "doc.md", "cat cat cat")

	out := callJSON(t, NewContentReplaceTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"search":    "cat",
		"replace":   "dog",
		"all":       true,
	})
	if out["count"] != float64(3) {
		t.Errorf("count = %v, want 3", out["count"])
	}
	if got := readFile(t, path); got != "dog dog dog" {
		t.Errorf("content = %q", got)
	}
}

func TestContentReplace_EmptyReplacementDeletes(t *testing.T) {
	env, _, root := testEnv(t)
	path := writeFile(t, root, "doc.md", "a-b")

	callJSON(t, NewContentReplaceTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"search":    "-",
		"replace":   "",
	})
	if got := readFile(t, path); got != "ab" {
		t.Errorf("content = %q", got)
	}
}

func TestContentReplace_NotFound(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "doc.md", "# Heading\n\nText")

	out := callJSON(t, NewContentReplaceTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"search":    "missing words",
		"replace":   "x",
	})
	if out["success"] != false || out["reason"] != "not_found" {
		t.Errorf("result = %v", out)
	}
}

func TestContentReplace_RequiresReplace(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "doc.md", "abc")

	result := call(t, NewContentReplaceTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"search":    "a",
	})
	if !isErrorResult(result) {
		t.Fatal("expected error result")
	}
}

func TestContentReplace_RejectsNonBooleanAll(t *testing.T) {
	env, store, root := testEnv(t)
	path := writeFile(t, root, "doc.md", "a-a-a")

	result := call(t, NewContentReplaceTool(env), map[string]interface{}{
		"workspace": "notes",
		"path":      "doc.md",
		"search":    "a",
		"replace":   "b",
		"all":       "true",
	})
	if !isErrorResult(result) || !strings.Contains(getResultText(result), "'all' must be a boolean") {
		t.Errorf("expected boolean error, got %q", getResultText(result))
	}
	if got := readFile(t, path); got != "a-a-a" {
		t.Errorf("content = %q, want unchanged", got)
	}
	if edits := history(t, store); len(edits) != 0 {
		t.Errorf("edits = %+v, want none", edits)
	}
}

func TestContentRead_RejectsNonBooleanLineNumbers(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "doc.md", "abc")

	result := call(t, NewContentReadTool(env), map[string]interface{}{
		"workspace":    "notes",
		"path":         "doc.md",
		"line_numbers": float64(1),
	})
	if !isErrorResult(result) {
		t.Fatal("expected error result")
	}
}

// --- Workspace tools ---

func TestWorkspaceList(t *testing.T) {
	env, _, root := testEnv(t)

	out := callJSON(t, NewWorkspaceListTool(env), map[string]interface{}{})
	list := out["workspaces"].([]any)
	if len(list) != 1 {
		t.Fatalf("workspaces = %v", list)
	}
	ws := list[0].(map[string]any)
	if ws["name"] != "notes" || ws["root"] != root {
		t.Errorf("workspace = %v", ws)
	}
}

func TestEditHistory_FiltersAndSearch(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "a.md", "one")
	writeFile(t, root, "b.md", "two")

	callJSON(t, NewContentReplaceTool(env), map[string]interface{}{
		"workspace": "notes", "path": "a.md", "search": "one", "replace": "uno",
	})
	callJSON(t, NewContentInsertTool(env), map[string]interface{}{
		"workspace": "notes", "path": "b.md", "text": "three",
	})

	all := callJSON(t, NewEditHistoryTool(env), map[string]interface{}{"workspace": "notes"})
	if all["count"] != float64(2) {
		t.Fatalf("count = %v, want 2", all["count"])
	}
	newest := all["edits"].([]any)[0].(map[string]any)
	if newest["tool"] != "content_insert" {
		t.Errorf("newest edit = %v, want content_insert first", newest)
	}

	byPath := callJSON(t, NewEditHistoryTool(env), map[string]interface{}{"path": "a.md"})
	if byPath["count"] != float64(1) {
		t.Errorf("path filter count = %v, want 1", byPath["count"])
	}

	found := callJSON(t, NewEditHistoryTool(env), map[string]interface{}{"query": "replaced"})
	if found["count"] != float64(1) {
		t.Errorf("search count = %v, want 1", found["count"])
	}
}

func TestEditHistory_UnknownWorkspace(t *testing.T) {
	env, _, _ := testEnv(t)

	result := call(t, NewEditHistoryTool(env), map[string]interface{}{"workspace": "ghost"})
	if !isErrorResult(result) {
		t.Fatal("expected error result")
	}
}

// --- Cancellation ---

func TestHandle_CancelledContext(t *testing.T) {
	env, _, root := testEnv(t)
	writeFile(t, root, "doc.md", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"workspace": "notes", "path": "doc.md", "text": "y"}
	if _, err := NewContentInsertTool(env).Handle(ctx, req); err == nil {
		t.Fatal("expected context error")
	}
	if got := readFile(t, filepath.Join(root, "doc.md")); got != "x" {
		t.Errorf("document modified after cancellation: %q", got)
	}
}
