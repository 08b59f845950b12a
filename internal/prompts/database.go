package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DatabasePrompt handles the docket-database MCP prompt.
// It instructs the AI to read and present a database.
type DatabasePrompt struct{}

// NewDatabasePrompt creates a DatabasePrompt.
func NewDatabasePrompt() *DatabasePrompt {
	return &DatabasePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *DatabasePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("docket-database",
		mcp.WithPromptDescription(
			"Review a markdown database: its schema, saved views and rows, "+
				"and suggest what to do next.",
		),
		mcp.WithArgument("workspace",
			mcp.ArgumentDescription("Workspace name"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("database",
			mcp.ArgumentDescription("Database path; omit to pick from db_list"),
		),
	)
}

// Handle processes the docket-database prompt request.
func (p *DatabasePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	ws := req.Params.Arguments["workspace"]
	if ws == "" {
		return nil, fmt.Errorf("workspace is required")
	}
	db := req.Params.Arguments["database"]

	first := fmt.Sprintf("Run `db_read` on database `%s` in workspace `%s`", db, ws)
	if db == "" {
		first = fmt.Sprintf("Run `db_list` for workspace `%s` and ask me which database to open, then `db_read` it", ws)
	}

	return &mcp.GetPromptResult{
		Description: "Review database",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please:\n" +
						"1. " + first + "\n" +
						"2. Show me the columns with their types and select options\n" +
						"3. Run `db_list_views` and explain each view's filter, sort and grouping\n" +
						"4. Show the rows of the default view as a compact table\n" +
						"5. Point out rows with empty required-looking fields and offer to fill them with `db_update_rows`",
				),
			},
		},
	}, nil
}
