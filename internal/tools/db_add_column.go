package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
	"github.com/HendryAvila/docket/internal/faults"
	"github.com/HendryAvila/docket/internal/frontmatter"
)

// DBAddColumnTool handles the db_add_column MCP tool.
type DBAddColumnTool struct {
	env *Env
}

// NewDBAddColumnTool creates a DBAddColumnTool.
func NewDBAddColumnTool(env *Env) *DBAddColumnTool {
	return &DBAddColumnTool{env: env}
}

// Definition returns the MCP tool definition for db_add_column.
func (t *DBAddColumnTool) Definition() mcp.Tool {
	return mcp.NewTool("db_add_column",
		mcp.WithDescription(
			"Add a column to a database schema. With 'default', every existing row that lacks "+
				"the column gets that value written into its front matter.",
		),
		withWorkspace(),
		withDatabase(),
		mcp.WithString("name", mcp.Description("Display name (the id is derived from it when omitted)")),
		mcp.WithString("id", mcp.Description("Column id used as the front matter key")),
		mcp.WithString("type",
			mcp.Description("Column type (default: text)"),
			mcp.Enum(database.ColumnTypes[1:]...),
		),
		mcp.WithArray("options",
			mcp.Description("Choices for select and multiselect columns; colors are assigned when omitted"),
			mcp.Items(optionSchema),
		),
		mcp.WithString("default", mcp.Description("Value to backfill into existing rows")),
	)
}

// Handle processes the db_add_column tool call.
func (t *DBAddColumnTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	col := database.Column{
		ID:   req.GetString("id", ""),
		Name: req.GetString("name", ""),
		Type: database.ColumnType(req.GetString("type", "")),
	}
	if _, err := decodeArg(req, "options", &col.Options); err != nil {
		return toolError(err)
	}
	var backfill *frontmatter.Value
	if raw, ok := req.GetArguments()["default"]; ok && raw != nil {
		v, err := frontmatter.ValueFromAny(raw)
		if err != nil {
			return toolError(faults.InvalidParams("'default': %v", err))
		}
		backfill = &v
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		cfg, err := t.env.Databases.AddColumn(tg.ws.Root, tg.rel, col, backfill)
		if err != nil {
			return toolError(err)
		}
		added := cfg.Columns[len(cfg.Columns)-1]
		t.env.record(tg, "db_add_column", fmt.Sprintf("added column %q (%s)", added.ID, added.Type), true)
		return jsonResult(map[string]any{
			"success": true,
			"column":  added,
			"columns": cfg.Columns,
		})
	})
}
