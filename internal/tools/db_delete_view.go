package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DBDeleteViewTool handles the db_delete_view MCP tool.
type DBDeleteViewTool struct {
	env *Env
}

// NewDBDeleteViewTool creates a DBDeleteViewTool.
func NewDBDeleteViewTool(env *Env) *DBDeleteViewTool {
	return &DBDeleteViewTool{env: env}
}

// Definition returns the MCP tool definition for db_delete_view.
func (t *DBDeleteViewTool) Definition() mcp.Tool {
	return mcp.NewTool("db_delete_view",
		mcp.WithDescription(
			"Delete a saved view. The last remaining view cannot be deleted; deleting the default "+
				"view makes the first remaining view the default.",
		),
		withWorkspace(),
		withDatabase(),
		mcp.WithString("view", mcp.Required(), mcp.Description("Id of the view to delete")),
	)
}

// Handle processes the db_delete_view tool call.
func (t *DBDeleteViewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	id := req.GetString("view", "")
	if id == "" {
		return mcp.NewToolResultError("'view' is required"), nil
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		cfg, err := t.env.Databases.DeleteView(tg.ws.Root, tg.rel, id)
		if err != nil {
			return toolError(err)
		}
		t.env.record(tg, "db_delete_view", fmt.Sprintf("deleted view %q", id), true)
		return jsonResult(map[string]any{
			"success":     true,
			"deleted":     id,
			"views":       cfg.ViewIDs(),
			"defaultView": cfg.DefaultView,
		})
	})
}
