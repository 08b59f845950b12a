package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/workspace"
)

// EditHistoryTool handles the edit_history MCP tool.
type EditHistoryTool struct {
	env *Env
}

// NewEditHistoryTool creates an EditHistoryTool.
func NewEditHistoryTool(env *Env) *EditHistoryTool {
	return &EditHistoryTool{env: env}
}

// Definition returns the MCP tool definition for edit_history.
func (t *EditHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("edit_history",
		mcp.WithDescription(
			"Show recent edits made through this server, newest first, including rejected attempts "+
				"(success=false). With 'query', searches edit summaries instead.",
		),
		mcp.WithString("workspace", mcp.Description("Only edits in this workspace")),
		mcp.WithString("path", mcp.Description("Only edits to this document or database path")),
		mcp.WithString("query", mcp.Description("Full-text search over edit summaries")),
		mcp.WithNumber("limit", mcp.Description("Max results (default: 20)")),
	)
}

// Handle processes the edit_history tool call.
func (t *EditHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t.env.Journal == nil {
		return mcp.NewToolResultError("edit history is not available"), nil
	}

	opts := workspace.HistoryOptions{
		Target: req.GetString("path", ""),
		Query:  req.GetString("query", ""),
	}
	if name := req.GetString("workspace", ""); name != "" {
		ws, err := t.env.Workspaces.Resolve(name)
		if err != nil {
			return toolError(err)
		}
		opts.Workspace = ws.Name
	}
	limit, err := intArg(req, "limit", 20)
	if err != nil {
		return toolError(err)
	}
	opts.Limit = limit

	edits, err := t.env.Journal.History(opts)
	if err != nil {
		return toolError(err)
	}
	if edits == nil {
		edits = []workspace.Edit{}
	}
	return jsonResult(map[string]any{
		"count": len(edits),
		"edits": edits,
	})
}
