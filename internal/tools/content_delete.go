package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ContentDeleteTool handles the content_delete MCP tool.
type ContentDeleteTool struct {
	env *Env
}

// NewContentDeleteTool creates a ContentDeleteTool.
func NewContentDeleteTool(env *Env) *ContentDeleteTool {
	return &ContentDeleteTool{env: env}
}

// Definition returns the MCP tool definition for content_delete.
func (t *ContentDeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("content_delete",
		mcp.WithDescription(
			"Delete the byte range [start, end) from a document. Pass expected_content to make "+
				"the delete conditional: on mismatch nothing is written and the actual content plus "+
				"any locations of the expected text are returned.",
		),
		mcp.WithString("workspace", mcp.Required(), mcp.Description("Workspace name or registered root path")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Document path relative to the workspace root")),
		mcp.WithNumber("start", mcp.Required(), mcp.Description("Start byte offset (inclusive)")),
		mcp.WithNumber("end", mcp.Required(), mcp.Description("End byte offset (exclusive)")),
		mcp.WithString("expected_content",
			mcp.Description("Text the range must contain, compared with surrounding whitespace trimmed"),
		),
	)
}

// Handle processes the content_delete tool call.
func (t *ContentDeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "path", true)
	if err != nil {
		return toolError(err)
	}
	start, err := requiredInt(req, "start")
	if err != nil {
		return toolError(err)
	}
	end, err := requiredInt(req, "end")
	if err != nil {
		return toolError(err)
	}
	expected, err := optionalString(req, "expected_content")
	if err != nil {
		return toolError(err)
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		res, err := t.env.Editor.Delete(tg.abs, start, end, expected)
		if err != nil {
			return toolError(err)
		}
		if res.Success {
			t.env.record(tg, "content_delete", fmt.Sprintf("deleted %d chars at [%d, %d)", res.DeletedChars, start, end), true)
		} else {
			t.env.record(tg, "content_delete", res.Reason, false)
		}
		return jsonResult(res)
	})
}
