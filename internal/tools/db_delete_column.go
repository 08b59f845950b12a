package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DBDeleteColumnTool handles the db_delete_column MCP tool.
type DBDeleteColumnTool struct {
	env *Env
}

// NewDBDeleteColumnTool creates a DBDeleteColumnTool.
func NewDBDeleteColumnTool(env *Env) *DBDeleteColumnTool {
	return &DBDeleteColumnTool{env: env}
}

// Definition returns the MCP tool definition for db_delete_column.
func (t *DBDeleteColumnTool) Definition() mcp.Tool {
	return mcp.NewTool("db_delete_column",
		mcp.WithDescription(
			"Delete a column from the schema, from every row's front matter and from every view "+
				"filter, sort and grouping. The title column cannot be deleted.",
		),
		withWorkspace(),
		withDatabase(),
		mcp.WithString("column", mcp.Required(), mcp.Description("Id of the column to delete")),
	)
}

// Handle processes the db_delete_column tool call.
func (t *DBDeleteColumnTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	id := req.GetString("column", "")
	if id == "" {
		return mcp.NewToolResultError("'column' is required"), nil
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		cfg, err := t.env.Databases.DeleteColumn(tg.ws.Root, tg.rel, id)
		if err != nil {
			return toolError(err)
		}
		t.env.record(tg, "db_delete_column", fmt.Sprintf("deleted column %q", id), true)
		return jsonResult(map[string]any{
			"success": true,
			"deleted": id,
			"columns": cfg.ColumnIDs(),
		})
	})
}
