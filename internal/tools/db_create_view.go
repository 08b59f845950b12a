package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
)

// DBCreateViewTool handles the db_create_view MCP tool.
type DBCreateViewTool struct {
	env *Env
}

// NewDBCreateViewTool creates a DBCreateViewTool.
func NewDBCreateViewTool(env *Env) *DBCreateViewTool {
	return &DBCreateViewTool{env: env}
}

// Definition returns the MCP tool definition for db_create_view.
func (t *DBCreateViewTool) Definition() mcp.Tool {
	return mcp.NewTool("db_create_view",
		mcp.WithDescription(
			"Save a named view with filters, sorts and grouping. db_read with 'view' applies the "+
				"view's first filter and first sort. Referenced columns must exist.",
		),
		withWorkspace(),
		withDatabase(),
		mcp.WithString("name", mcp.Required(), mcp.Description("View name")),
		mcp.WithString("id", mcp.Description("View id (derived from the name when omitted)")),
		mcp.WithString("type",
			mcp.Description("How clients render the view (default: table)"),
			mcp.Enum("table", "board", "list", "calendar"),
		),
		mcp.WithArray("filters", mcp.Description("Saved filters"), mcp.Items(filterSchema)),
		mcp.WithArray("sorts", mcp.Description("Saved sorts"), mcp.Items(sortSchema)),
		mcp.WithString("group_by", mcp.Description("Column to group by (board views)")),
		mcp.WithString("row_group_by", mcp.Description("Column for secondary row grouping")),
		mcp.WithBoolean("set_default", mcp.Description("Make this the default view (default: false)")),
	)
}

// Handle processes the db_create_view tool call.
func (t *DBCreateViewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tg, err := t.env.resolveTarget(req, "database", true)
	if err != nil {
		return toolError(err)
	}
	v := database.View{
		ID:         req.GetString("id", ""),
		Name:       req.GetString("name", ""),
		Type:       database.ViewType(req.GetString("type", "")),
		GroupBy:    req.GetString("group_by", ""),
		RowGroupBy: req.GetString("row_group_by", ""),
		Filters:    []database.Filter{},
		Sorts:      []database.Sort{},
	}
	if _, err := decodeArg(req, "filters", &v.Filters); err != nil {
		return toolError(err)
	}
	if _, err := decodeArg(req, "sorts", &v.Sorts); err != nil {
		return toolError(err)
	}
	setDefault, err := boolArg(req, "set_default", false)
	if err != nil {
		return toolError(err)
	}

	return t.env.mutate(ctx, tg, func() (*mcp.CallToolResult, error) {
		cfg, err := t.env.Databases.CreateView(tg.ws.Root, tg.rel, v)
		if err != nil {
			return toolError(err)
		}
		created := cfg.Views[len(cfg.Views)-1]
		if setDefault {
			if cfg, err = t.env.Databases.SetDefaultView(tg.ws.Root, tg.rel, created.ID); err != nil {
				return toolError(err)
			}
		}
		t.env.record(tg, "db_create_view", fmt.Sprintf("created view %q", created.ID), true)
		return jsonResult(map[string]any{
			"success":     true,
			"view":        created,
			"defaultView": cfg.DefaultView,
		})
	})
}
