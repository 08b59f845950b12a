package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// DBDeleteRowsTool handles the db_delete_rows MCP tool.
type DBDeleteRowsTool struct {
	env *Env
}

// NewDBDeleteRowsTool creates a DBDeleteRowsTool.
func NewDBDeleteRowsTool(env *Env) *DBDeleteRowsTool {
	return &DBDeleteRowsTool{env: env}
}

// Definition returns the MCP tool definition for db_delete_rows.
func (t *DBDeleteRowsTool) Definition() mcp.Tool {
	return mcp.NewTool("db_delete_rows",
		mcp.WithDescription(
			"Delete row files selected by 'ids' or by a 'where' object of column to value equality. "+
				"Exactly one of the two is required.",
		),
		withWorkspace(),
		withDatabase(),
		mcp.WithArray("ids",
			mcp.Description("Row ids to delete"),
			mcp.WithStringItems(),
		),
		mcp.WithObject("where",
			mcp.Description("Delete every row whose columns equal these values"),
		),
	)
}

// Handle processes the db_delete_rows tool call.
func (t *DBDeleteRowsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	sel, err := requireSelector(req)
	if err != nil {
		return toolError(err)
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		rows, err := t.env.Databases.DeleteRows(tg.ws.Root, tg.rel, sel)
		if err != nil {
			return toolError(err)
		}
		ids := rowIDs(rows)
		if len(ids) > 0 {
			t.env.record(tg, "db_delete_rows", "deleted "+strings.Join(ids, ", "), true)
		}
		return jsonResult(map[string]any{
			"success": true,
			"deleted": len(ids),
			"ids":     ids,
		})
	})
}
