package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
)

// DBReadTool handles the db_read MCP tool.
type DBReadTool struct {
	env *Env
}

// NewDBReadTool creates a DBReadTool.
func NewDBReadTool(env *Env) *DBReadTool {
	return &DBReadTool{env: env}
}

// Definition returns the MCP tool definition for db_read.
func (t *DBReadTool) Definition() mcp.Tool {
	return mcp.NewTool("db_read",
		mcp.WithDescription(
			"Read a database's schema and rows. Rows can be narrowed by a text search, filters, "+
				"a sort and a saved view. A view applies its first filter only when no filters are "+
				"given and its first sort only when no sort is given. 'total' counts the returned rows and 'matched' counts matches before 'limit'.",
		),
		withWorkspace(),
		withDatabase(),
		mcp.WithString("search", mcp.Description("Case-insensitive text matched against titles and text fields")),
		mcp.WithArray("filters",
			mcp.Description("Filters, all of which must match. Operators: "+strings.Join(database.FilterOps, ", ")),
			mcp.Items(filterSchema),
		),
		mcp.WithObject("sort",
			mcp.Description("Sort by one column"),
			mcp.Properties(sortSchema["properties"].(map[string]any)),
		),
		mcp.WithString("view", mcp.Description("Saved view id")),
		mcp.WithNumber("limit", mcp.Description("Maximum rows to return (default: all)")),
	)
}

// Handle processes the db_read tool call.
func (t *DBReadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}

	q := database.Query{
		Search: req.GetString("search", ""),
		ViewID: req.GetString("view", ""),
	}
	if q.Limit, err = intArg(req, "limit", 0); err != nil {
		return toolError(err)
	}
	if q.Limit < 0 {
		return mcp.NewToolResultError("'limit' must not be negative"), nil
	}
	if _, err := decodeArg(req, "filters", &q.Filters); err != nil {
		return toolError(err)
	}
	var srt database.Sort
	if present, err := decodeArg(req, "sort", &srt); err != nil {
		return toolError(err)
	} else if present {
		if srt.Column == "" {
			return mcp.NewToolResultError("'sort.column' is required"), nil
		}
		if srt.Direction != database.SortDesc {
			srt.Direction = database.SortAsc
		}
		q.Sort = &srt
	}

	res, err := t.env.Databases.Read(tg.ws.Root, tg.rel, q)
	if err != nil {
		return toolError(err)
	}
	if res.Rows == nil {
		res.Rows = []database.Row{}
	}
	return jsonResult(res)
}
