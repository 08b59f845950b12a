package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
)

// DBCreateTool handles the db_create MCP tool.
type DBCreateTool struct {
	env *Env
}

// NewDBCreateTool creates a DBCreateTool.
func NewDBCreateTool(env *Env) *DBCreateTool {
	return &DBCreateTool{env: env}
}

// Definition returns the MCP tool definition for db_create.
func (t *DBCreateTool) Definition() mcp.Tool {
	return mcp.NewTool("db_create",
		mcp.WithDescription(
			"Create a database: a folder named after the database holding database.json. "+
				"Without columns it gets title, status (Todo, In Progress, Done) and tags. "+
				"A title column is always present; select options get colors automatically when omitted.",
		),
		withWorkspace(),
		mcp.WithString("name", mcp.Required(), mcp.Description("Human-readable database name")),
		mcp.WithString("folder", mcp.Description("Parent folder relative to the workspace root (default: root)")),
		mcp.WithArray("columns",
			mcp.Description("Column definitions. Types: "+strings.Join(database.ColumnTypes, ", ")),
			mcp.Items(columnSchema),
		),
	)
}

// Handle processes the db_create tool call.
func (t *DBCreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "folder", false)
	if err != nil {
		return toolError(err)
	}
	var columns []database.Column
	if _, err := decodeArg(req, "columns", &columns); err != nil {
		return toolError(err)
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		cfg, dbPath, err := t.env.Databases.Create(tg.ws.Root, req.GetString("name", ""), columns, tg.rel)
		if err != nil {
			return toolError(err)
		}
		tg.rel = dbPath
		t.env.record(tg, "db_create", fmt.Sprintf("created database %q with %d columns", cfg.Name, len(cfg.Columns)), true)
		return jsonResult(map[string]any{
			"success": true,
			"path":    dbPath,
			"config":  cfg,
		})
	})
}
