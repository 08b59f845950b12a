// Package prompts implements MCP prompt handlers.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// EditPrompt handles the docket-edit MCP prompt.
// It walks the AI through a safe locate-then-edit cycle on one document.
type EditPrompt struct{}

// NewEditPrompt creates an EditPrompt.
func NewEditPrompt() *EditPrompt {
	return &EditPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *EditPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("docket-edit",
		mcp.WithPromptDescription(
			"Edit a document safely: read it, locate the exact text, then apply a guarded "+
				"insert, delete or replace.",
		),
		mcp.WithArgument("workspace",
			mcp.ArgumentDescription("Workspace name"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("path",
			mcp.ArgumentDescription("Document path relative to the workspace root"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("change",
			mcp.ArgumentDescription("What should change in the document"),
		),
	)
}

// Handle processes the docket-edit prompt request.
func (p *EditPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	ws, path, change := args["workspace"], args["path"], args["change"]
	if ws == "" || path == "" {
		return nil, fmt.Errorf("workspace and path are required")
	}
	if change == "" {
		change = "ask me what I want to change"
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Edit %s in %s", path, ws),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to edit `%s` in the `%s` workspace: %s.\n\n"+
						"Please:\n"+
						"1. Run `content_read` to see the current text\n"+
						"2. Use `content_locate` to get exact byte offsets for anything you will touch\n"+
						"3. Prefer `content_replace` for text changes; for inserts at an offset pass "+
						"`expected_line_before`, and for deletes pass `expected_content`\n"+
						"4. If a result comes back with success=false, read its hint and candidates, "+
						"re-read the document and retry with the current text. Never guess offsets\n"+
						"5. Finish by showing me `edit_history` for this path",
					path, ws, change,
				)),
			},
		},
	}, nil
}
