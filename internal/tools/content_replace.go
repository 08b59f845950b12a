package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ContentReplaceTool handles the content_replace MCP tool.
type ContentReplaceTool struct {
	env *Env
}

// NewContentReplaceTool creates a ContentReplaceTool.
func NewContentReplaceTool(env *Env) *ContentReplaceTool {
	return &ContentReplaceTool{env: env}
}

// Definition returns the MCP tool definition for content_replace.
func (t *ContentReplaceTool) Definition() mcp.Tool {
	return mcp.NewTool("content_replace",
		mcp.WithDescription(
			"Replace exact text in a document, the first occurrence or all of them. "+
				"If the search text is not found nothing is written and near matches are suggested.",
		),
		mcp.WithString("workspace", mcp.Required(), mcp.Description("Workspace name or registered root path")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Document path relative to the workspace root")),
		mcp.WithString("search", mcp.Required(), mcp.Description("Exact text to replace")),
		mcp.WithString("replace", mcp.Required(), mcp.Description("Replacement text (may be empty)")),
		mcp.WithBoolean("all", mcp.Description("Replace every occurrence (default: false)")),
	)
}

// Handle processes the content_replace tool call.
func (t *ContentReplaceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "path", true)
	if err != nil {
		return toolError(err)
	}
	search := req.GetString("search", "")
	replacement, err := optionalString(req, "replace")
	if err != nil {
		return toolError(err)
	}
	if replacement == nil {
		return mcp.NewToolResultError("'replace' is required (use an empty string to remove text)"), nil
	}
	all, err := boolArg(req, "all", false)
	if err != nil {
		return toolError(err)
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		res, err := t.env.Editor.Replace(tg.abs, search, *replacement, all)
		if err != nil {
			return toolError(err)
		}
		if res.Success {
			t.env.record(tg, "content_replace", fmt.Sprintf("replaced %d occurrence(s) of %q", res.Count, search), true)
		} else {
			t.env.record(tg, "content_replace", res.Reason, false)
		}
		return jsonResult(res)
	})
}
