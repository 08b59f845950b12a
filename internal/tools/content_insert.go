package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/editor"
)

// ContentInsertTool handles the content_insert MCP tool.
type ContentInsertTool struct {
	env *Env
}

// NewContentInsertTool creates a ContentInsertTool.
func NewContentInsertTool(env *Env) *ContentInsertTool {
	return &ContentInsertTool{env: env}
}

// Definition returns the MCP tool definition for content_insert.
func (t *ContentInsertTool) Definition() mcp.Tool {
	return mcp.NewTool("content_insert",
		mcp.WithDescription(
			"Insert text into a document at the start, the end, or a byte offset. "+
				"Pass expected_line_before to guard against stale offsets: if the line before the "+
				"insertion point differs, nothing is written and matching lines are suggested instead.",
		),
		mcp.WithString("workspace", mcp.Required(), mcp.Description("Workspace name or registered root path")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Document path relative to the workspace root")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to insert")),
		mcp.WithString("position",
			mcp.Description("'start', 'end' (default) or a byte offset such as '120'"),
		),
		mcp.WithString("expected_line_before",
			mcp.Description("Exact content of the line that must precede the insertion point"),
		),
	)
}

// Handle processes the content_insert tool call.
func (t *ContentInsertTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "path", true)
	if err != nil {
		return toolError(err)
	}
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}
	pos, err := editor.ParsePosition(req.GetArguments()["position"])
	if err != nil {
		return toolError(err)
	}
	expected, err := optionalString(req, "expected_line_before")
	if err != nil {
		return toolError(err)
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		res, err := t.env.Editor.Insert(tg.abs, pos, text, expected)
		if err != nil {
			return toolError(err)
		}
		if res.Success {
			t.env.record(tg, "content_insert", fmt.Sprintf("inserted %d chars at %s", len(text), res.Position), true)
		} else {
			t.env.record(tg, "content_insert", res.Reason, false)
		}
		return jsonResult(res)
	})
}
