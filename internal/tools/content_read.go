package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ContentReadTool handles the content_read MCP tool.
type ContentReadTool struct {
	env *Env
}

// NewContentReadTool creates a ContentReadTool.
func NewContentReadTool(env *Env) *ContentReadTool {
	return &ContentReadTool{env: env}
}

// Definition returns the MCP tool definition for content_read.
func (t *ContentReadTool) Definition() mcp.Tool {
	return mcp.NewTool("content_read",
		mcp.WithDescription(
			"Read a document inside a workspace. Returns the full text plus its size in bytes "+
				"and lines. Offsets used by content_insert and content_delete are byte offsets into this text.",
		),
		mcp.WithString("workspace", mcp.Required(), mcp.Description("Workspace name or registered root path")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Document path relative to the workspace root")),
		mcp.WithBoolean("line_numbers", mcp.Description("Also return a line-numbered rendering (default: false)")),
	)
}

// Handle processes the content_read tool call.
func (t *ContentReadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tg, err := t.env.resolveTarget(req, "path", true)
	if err != nil {
		return toolError(err)
	}
	lineNumbers, err := boolArg(req, "line_numbers", false)
	if err != nil {
		return toolError(err)
	}
	doc, err := t.env.Editor.Read(tg.abs, lineNumbers)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(doc)
}
