package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DBSetDefaultViewTool handles the db_set_default_view MCP tool.
type DBSetDefaultViewTool struct {
	env *Env
}

// NewDBSetDefaultViewTool creates a DBSetDefaultViewTool.
func NewDBSetDefaultViewTool(env *Env) *DBSetDefaultViewTool {
	return &DBSetDefaultViewTool{env: env}
}

// Definition returns the MCP tool definition for db_set_default_view.
func (t *DBSetDefaultViewTool) Definition() mcp.Tool {
	return mcp.NewTool("db_set_default_view",
		mcp.WithDescription("Mark an existing view as the database's default view."),
		withWorkspace(),
		withDatabase(),
		mcp.WithString("view", mcp.Required(), mcp.Description("Id of the view")),
	)
}

// Handle processes the db_set_default_view tool call.
func (t *DBSetDefaultViewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	id := req.GetString("view", "")
	if id == "" {
		return mcp.NewToolResultError("'view' is required"), nil
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		cfg, err := t.env.Databases.SetDefaultView(tg.ws.Root, tg.rel, id)
		if err != nil {
			return toolError(err)
		}
		t.env.record(tg, "db_set_default_view", fmt.Sprintf("default view is now %q", id), true)
		return jsonResult(map[string]any{
			"success":     true,
			"defaultView": cfg.DefaultView,
		})
	})
}
