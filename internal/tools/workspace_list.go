package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// WorkspaceListTool handles the workspace_list MCP tool.
type WorkspaceListTool struct {
	env *Env
}

// NewWorkspaceListTool creates a WorkspaceListTool.
func NewWorkspaceListTool(env *Env) *WorkspaceListTool {
	return &WorkspaceListTool{env: env}
}

// Definition returns the MCP tool definition for workspace_list.
func (t *WorkspaceListTool) Definition() mcp.Tool {
	return mcp.NewTool("workspace_list",
		mcp.WithDescription(
			"List the registered workspaces. Every other tool takes one of these names "+
				"(or its root path) as its 'workspace' argument.",
		),
	)
}

// Handle processes the workspace_list tool call.
func (t *WorkspaceListTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, err := t.env.Workspaces.List()
	if err != nil {
		return toolError(err)
	}
	if len(list) == 0 {
		return mcp.NewToolResultText(
			"No workspaces registered. Add one with `docket workspace add <name> <dir>` " +
				"or a [workspaces] table in config.toml.",
		), nil
	}
	return jsonResult(map[string]any{"workspaces": list})
}
