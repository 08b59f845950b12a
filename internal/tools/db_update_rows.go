package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
	"github.com/HendryAvila/docket/internal/faults"
)

// DBUpdateRowsTool handles the db_update_rows MCP tool.
type DBUpdateRowsTool struct {
	env *Env
}

// NewDBUpdateRowsTool creates a DBUpdateRowsTool.
func NewDBUpdateRowsTool(env *Env) *DBUpdateRowsTool {
	return &DBUpdateRowsTool{env: env}
}

// Definition returns the MCP tool definition for db_update_rows.
func (t *DBUpdateRowsTool) Definition() mcp.Tool {
	return mcp.NewTool("db_update_rows",
		mcp.WithDescription(
			"Update rows selected either by id (file name, with or without .md, or title) or by a "+
				"'where' object of column to value equality. Exactly one of 'ids' and 'where' is required. "+
				"Setting 'title' renames the row file.",
		),
		withWorkspace(),
		withDatabase(),
		mcp.WithObject("updates",
			mcp.Required(),
			mcp.Description("Column id to new value; '_content' replaces the body"),
		),
		mcp.WithArray("ids",
			mcp.Description("Row ids to update"),
			mcp.WithStringItems(),
		),
		mcp.WithObject("where",
			mcp.Description("Update every row whose columns equal these values"),
		),
	)
}

// Handle processes the db_update_rows tool call.
func (t *DBUpdateRowsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	var raw map[string]any
	if present, err := decodeArg(req, "updates", &raw); err != nil {
		return toolError(err)
	} else if !present || len(raw) == 0 {
		return mcp.NewToolResultError("'updates' must set at least one column"), nil
	}
	changes, err := database.RowInputFromMap(raw)
	if err != nil {
		return toolError(faults.InvalidParams("updates: %v", err))
	}
	sel, err := requireSelector(req)
	if err != nil {
		return toolError(err)
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		rows, err := t.env.Databases.UpdateRows(tg.ws.Root, tg.rel, changes, sel)
		if err != nil {
			return toolError(err)
		}
		if len(rows) > 0 {
			t.env.record(tg, "db_update_rows", "updated "+strings.Join(rowIDs(rows), ", "), true)
		}
		return jsonResult(map[string]any{
			"success": true,
			"updated": len(rows),
			"rows":    nonNilRows(rows),
		})
	})
}
