package tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
	"github.com/HendryAvila/docket/internal/faults"
)

var (
	filterSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"column":   map[string]any{"type": "string"},
			"operator": map[string]any{"type": "string", "enum": database.FilterOps},
			"value":    map[string]any{},
		},
		"required": []string{"column", "operator"},
	}
	sortSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"column":    map[string]any{"type": "string"},
			"direction": map[string]any{"type": "string", "enum": []string{"asc", "desc"}},
		},
		"required": []string{"column"},
	}
	optionSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value": map[string]any{"type": "string"},
			"color": map[string]any{"type": "string"},
		},
		"required": []string{"value"},
	}
	columnSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":      map[string]any{"type": "string"},
			"name":    map[string]any{"type": "string"},
			"type":    map[string]any{"type": "string", "enum": database.ColumnTypes},
			"options": map[string]any{"type": "array", "items": optionSchema},
		},
		"required": []string{"name", "type"},
	}
)

func withWorkspace() mcp.ToolOption {
	return mcp.WithString("workspace", mcp.Required(), mcp.Description("Workspace name or registered root path"))
}

func withDatabase() mcp.ToolOption {
	return mcp.WithString("database",
		mcp.Required(),
		mcp.Description("Database folder relative to the workspace root, as returned by db_list or db_create"),
	)
}

// rowIDs lists the ids of affected rows for journal summaries.
func rowIDs(rows []database.Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

// requireSelector rejects calls that give neither or both of ids and where.
func requireSelector(req mcp.CallToolRequest) (database.Selector, error) {
	var sel database.Selector
	hasIDs, err := decodeArg(req, "ids", &sel.IDs)
	if err != nil {
		return sel, err
	}
	hasWhere, err := decodeArg(req, "where", &sel.Where)
	if err != nil {
		return sel, err
	}
	if hasIDs == hasWhere {
		return sel, faults.InvalidParams("provide exactly one of 'ids' or 'where'")
	}
	return sel, nil
}

func nonNilRows(rows []database.Row) []database.Row {
	if rows == nil {
		return []database.Row{}
	}
	return rows
}
