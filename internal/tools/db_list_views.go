package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// DBListViewsTool handles the db_list_views MCP tool.
type DBListViewsTool struct {
	env *Env
}

// NewDBListViewsTool creates a DBListViewsTool.
func NewDBListViewsTool(env *Env) *DBListViewsTool {
	return &DBListViewsTool{env: env}
}

// Definition returns the MCP tool definition for db_list_views.
func (t *DBListViewsTool) Definition() mcp.Tool {
	return mcp.NewTool("db_list_views",
		mcp.WithDescription("List a database's saved views and which one is the default."),
		withWorkspace(),
		withDatabase(),
	)
}

// Handle processes the db_list_views tool call.
func (t *DBListViewsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	views, def, err := t.env.Databases.ListViews(tg.ws.Root, tg.rel)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(map[string]any{
		"views":       views,
		"defaultView": def,
	})
}
