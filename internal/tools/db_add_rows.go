package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
)

// DBAddRowsTool handles the db_add_rows MCP tool.
type DBAddRowsTool struct {
	env *Env
}

// NewDBAddRowsTool creates a DBAddRowsTool.
func NewDBAddRowsTool(env *Env) *DBAddRowsTool {
	return &DBAddRowsTool{env: env}
}

// Definition returns the MCP tool definition for db_add_rows.
func (t *DBAddRowsTool) Definition() mcp.Tool {
	return mcp.NewTool("db_add_rows",
		mcp.WithDescription(
			"Add rows to a database. Each row is an object of column id to value; 'title' names the "+
				"row file and '_content' sets its markdown body. Duplicate titles get a numeric suffix.",
		),
		withWorkspace(),
		withDatabase(),
		mcp.WithArray("rows",
			mcp.Required(),
			mcp.Description("Rows to add, e.g. [{\"title\": \"Fix login\", \"status\": \"Todo\"}]"),
			mcp.Items(map[string]any{"type": "object"}),
		),
	)
}

// Handle processes the db_add_rows tool call.
func (t *DBAddRowsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	var raw []map[string]any
	if present, err := decodeArg(req, "rows", &raw); err != nil {
		return toolError(err)
	} else if !present || len(raw) == 0 {
		return mcp.NewToolResultError("'rows' must contain at least one row"), nil
	}
	inputs := make([]database.RowInput, len(raw))
	for i, m := range raw {
		in, err := database.RowInputFromMap(m)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("row %d: %v", i, err)), nil
		}
		inputs[i] = in
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		rows, err := t.env.Databases.AddRows(tg.ws.Root, tg.rel, inputs)
		if err != nil {
			return toolError(err)
		}
		t.env.record(tg, "db_add_rows", "added "+strings.Join(rowIDs(rows), ", "), true)
		return jsonResult(map[string]any{
			"success": true,
			"added":   len(rows),
			"rows":    rows,
		})
	})
}
