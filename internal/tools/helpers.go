// Package tools implements the MCP tool handlers.
//
// Each tool receives its dependencies via its struct (DIP) and exposes
// Definition() for the schema and Handle() for mcp-go's CallToolRequest
// signature.
//
// Error mapping at this boundary:
//   - caller mistakes (faults.KindInvalidParams, faults.KindNotFound) become
//     tool errors the model can read and correct
//   - precondition mismatches come back as JSON results with success=false
//   - anything else is returned as a Go error
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/faults"
	"github.com/HendryAvila/docket/internal/filestore"
	"github.com/HendryAvila/docket/internal/workspace"
)

// target is a resolved workspace plus a path inside it.
type target struct {
	ws  *workspace.Workspace
	rel string
	abs string
}

// resolveTarget reads the "workspace" argument and the named path argument
// and confines the path to the workspace root.
func (e *Env) resolveTarget(req mcp.CallToolRequest, pathKey string, required bool) (*target, error) {
	name := req.GetString("workspace", "")
	if name == "" {
		return nil, faults.InvalidParams("'workspace' is required")
	}
	rel := req.GetString(pathKey, "")
	if rel == "" && required {
		return nil, faults.InvalidParams("'%s' is required", pathKey)
	}

	ws, err := e.Workspaces.Resolve(name)
	if err != nil {
		return nil, err
	}
	abs, err := filestore.Resolve(ws.Root, rel)
	if err != nil {
		return nil, faults.InvalidParams("invalid %s: %v", pathKey, err)
	}
	return &target{ws: ws, rel: rel, abs: abs}, nil
}

// toolError maps a failure onto the MCP result contract.
func toolError(err error) (*mcp.CallToolResult, error) {
	if faults.IsClient(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// record journals an edit and logs it. Journal failures never fail the
// tool call: the edit itself already happened.
func (e *Env) record(t *target, tool, summary string, success bool) {
	if success {
		e.Logger.Info("edit applied", "op", tool, "workspace", t.ws.Name, "path", t.rel)
	} else {
		e.Logger.Debug("edit rejected", "op", tool, "workspace", t.ws.Name, "path", t.rel, "reason", summary)
	}
	if e.Journal == nil {
		return
	}
	if _, err := e.Journal.Record(workspace.Edit{
		Workspace: t.ws.Name,
		Tool:      tool,
		Target:    t.rel,
		Summary:   summary,
		Success:   success,
	}); err != nil {
		e.Logger.Warn("journal write failed", "op", tool, "err", err)
	}
}

// mutate runs fn with the target's workspace locked.
func (e *Env) mutate(ctx context.Context, t *target, fn func() (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := e.locks.lock(t.ws.Root)
	defer unlock()
	return fn()
}

// --- Argument helpers ---

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing. JSON numbers arrive as float64;
// numeric strings are accepted too.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) (int, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return defaultVal, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, faults.InvalidParams("'%s' must be an integer, got %v", key, v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, faults.InvalidParams("'%s' must be an integer, got %q", key, v)
		}
		return n, nil
	default:
		return 0, faults.InvalidParams("'%s' must be an integer, got %T", key, raw)
	}
}

// requiredInt is intArg for arguments without a default.
func requiredInt(req mcp.CallToolRequest, key string) (int, error) {
	if _, ok := req.GetArguments()[key]; !ok {
		return 0, faults.InvalidParams("'%s' is required", key)
	}
	return intArg(req, key, 0)
}

// boolArg extracts a boolean argument from a tool request. Present values
// that are not JSON booleans are rejected.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) (bool, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return defaultVal, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, faults.InvalidParams("'%s' must be a boolean, got %T", key, raw)
	}
	return v, nil
}

// optionalString returns nil when key is absent, so callers can tell an
// omitted argument from an empty one.
func optionalString(req mcp.CallToolRequest, key string) (*string, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, faults.InvalidParams("'%s' must be a string, got %T", key, raw)
	}
	return &s, nil
}

// decodeArg converts a structured argument into dst via JSON. It reports
// whether the argument was present.
func decodeArg(req mcp.CallToolRequest, key string, dst any) (bool, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return false, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return true, faults.InvalidParams("'%s': %v", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, faults.InvalidParams("'%s' has the wrong shape: %v", key, err)
	}
	return true, nil
}
