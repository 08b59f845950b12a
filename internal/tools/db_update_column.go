package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
)

// DBUpdateColumnTool handles the db_update_column MCP tool.
type DBUpdateColumnTool struct {
	env *Env
}

// NewDBUpdateColumnTool creates a DBUpdateColumnTool.
func NewDBUpdateColumnTool(env *Env) *DBUpdateColumnTool {
	return &DBUpdateColumnTool{env: env}
}

// Definition returns the MCP tool definition for db_update_column.
func (t *DBUpdateColumnTool) Definition() mcp.Tool {
	return mcp.NewTool("db_update_column",
		mcp.WithDescription(
			"Change a column's id, name, type or options. A new id is renamed in every row and "+
				"every view that references the column. Options replace the existing list. "+
				"The title column keeps its id and type.",
		),
		withWorkspace(),
		withDatabase(),
		mcp.WithString("column", mcp.Required(), mcp.Description("Id of the column to change")),
		mcp.WithString("new_id", mcp.Description("New column id")),
		mcp.WithString("name", mcp.Description("New display name")),
		mcp.WithString("type", mcp.Description("New column type"), mcp.Enum(database.ColumnTypes...)),
		mcp.WithArray("options",
			mcp.Description("Replacement choices for select and multiselect columns"),
			mcp.Items(optionSchema),
		),
	)
}

// Handle processes the db_update_column tool call.
func (t *DBUpdateColumnTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	id := req.GetString("column", "")
	if id == "" {
		return mcp.NewToolResultError("'column' is required"), nil
	}

	var changes database.ColumnChanges
	if changes.ID, err = optionalString(req, "new_id"); err != nil {
		return toolError(err)
	}
	if changes.Name, err = optionalString(req, "name"); err != nil {
		return toolError(err)
	}
	typ, err := optionalString(req, "type")
	if err != nil {
		return toolError(err)
	}
	if typ != nil {
		ct := database.ColumnType(*typ)
		changes.Type = &ct
	}
	var options []database.Option
	if present, err := decodeArg(req, "options", &options); err != nil {
		return toolError(err)
	} else if present {
		changes.Options = &options
	}
	if changes == (database.ColumnChanges{}) {
		return mcp.NewToolResultError("nothing to change: give new_id, name, type or options"), nil
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		cfg, err := t.env.Databases.UpdateColumn(tg.ws.Root, tg.rel, id, changes)
		if err != nil {
			return toolError(err)
		}
		newID := id
		if changes.ID != nil {
			newID = strings.TrimSpace(*changes.ID)
		}
		col, _ := cfg.Column(newID)
		summary := fmt.Sprintf("updated column %q", id)
		if newID != id {
			summary = fmt.Sprintf("renamed column %q to %q", id, newID)
		}
		t.env.record(tg, "db_update_column", summary, true)
		return jsonResult(map[string]any{
			"success": true,
			"column":  col,
			"views":   cfg.Views,
		})
	})
}
