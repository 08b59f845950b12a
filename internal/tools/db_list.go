package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
)

// DBListTool handles the db_list MCP tool.
type DBListTool struct {
	env *Env
}

// NewDBListTool creates a DBListTool.
func NewDBListTool(env *Env) *DBListTool {
	return &DBListTool{env: env}
}

// Definition returns the MCP tool definition for db_list.
func (t *DBListTool) Definition() mcp.Tool {
	return mcp.NewTool("db_list",
		mcp.WithDescription(
			"List every database in a workspace. A database is any folder holding a database.json; "+
				"each entry reports its path, name, row count, and column and view counts.",
		),
		withWorkspace(),
	)
}

// Handle processes the db_list tool call.
func (t *DBListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tg, err := t.env.resolveTarget(req, "", false)
	if err != nil {
		return toolError(err)
	}
	dbs, err := t.env.Databases.List(tg.ws.Root)
	if err != nil {
		return toolError(err)
	}
	if dbs == nil {
		dbs = []database.Summary{}
	}
	return jsonResult(map[string]any{
		"workspace": tg.ws.Name,
		"databases": dbs,
	})
}
