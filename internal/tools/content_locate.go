package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/editor"
)

// ContentLocateTool handles the content_locate MCP tool.
type ContentLocateTool struct {
	env *Env
}

// NewContentLocateTool creates a ContentLocateTool.
func NewContentLocateTool(env *Env) *ContentLocateTool {
	return &ContentLocateTool{env: env}
}

// Definition returns the MCP tool definition for content_locate.
func (t *ContentLocateTool) Definition() mcp.Tool {
	return mcp.NewTool("content_locate",
		mcp.WithDescription(
			"Find verbatim occurrences of text in a document and return their byte offsets, "+
				"line numbers and surrounding context. Use this before content_delete or an offset insert.",
		),
		mcp.WithString("workspace", mcp.Required(), mcp.Description("Workspace name or registered root path")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Document path relative to the workspace root")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Exact text to find")),
		mcp.WithNumber("limit", mcp.Description("Maximum occurrences to return (default: all)")),
	)
}

// Handle processes the content_locate tool call.
func (t *ContentLocateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tg, err := t.env.resolveTarget(req, "path", true)
	if err != nil {
		return toolError(err)
	}
	limit, err := intArg(req, "limit", 0)
	if err != nil {
		return toolError(err)
	}
	occ, err := t.env.Editor.Locate(tg.abs, req.GetString("text", ""), limit)
	if err != nil {
		return toolError(err)
	}
	if occ == nil {
		occ = []editor.Occurrence{}
	}
	return jsonResult(map[string]any{
		"count":       len(occ),
		"occurrences": occ,
	})
}
