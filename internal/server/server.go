// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here, only wiring.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/docket/internal/config"
	"github.com/HendryAvila/docket/internal/database"
	"github.com/HendryAvila/docket/internal/editor"
	"github.com/HendryAvila/docket/internal/filestore"
	"github.com/HendryAvila/docket/internal/prompts"
	"github.com/HendryAvila/docket/internal/resources"
	"github.com/HendryAvila/docket/internal/tools"
	"github.com/HendryAvila/docket/internal/workspace"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Tool is what every tool handler in internal/tools provides.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the workspace store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil.
func New(cfg *config.Config, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	// --- Create shared dependencies ---

	wsStore, err := workspace.New(workspace.Config{DataDir: cfg.DataDir})
	if err != nil {
		return nil, noop, fmt.Errorf("opening workspace store: %w", err)
	}
	cleanup := func() {
		if err := wsStore.Close(); err != nil {
			logger.Warn("workspace store close failed", "err", err)
		}
	}
	if err := wsStore.Sync(cfg.Workspaces); err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("registering configured workspaces: %w", err)
	}

	fs := filestore.NewOS()
	ed := editor.New(fs,
		editor.WithMaxSize(cfg.MaxDocumentSize),
		editor.WithPreviewLength(cfg.PreviewLength),
	)
	dbs := database.NewStore(fs,
		database.WithLanguage(cfg.Language()),
		database.WithPreviewLength(cfg.PreviewLength),
	)
	env := tools.NewEnv(wsStore, wsStore, ed, dbs, logger)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"docket",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	for _, t := range Tools(env) {
		s.AddTool(t.Definition(), t.Handle)
	}

	// --- Register prompts ---

	editPrompt := prompts.NewEditPrompt()
	s.AddPrompt(editPrompt.Definition(), editPrompt.Handle)

	dbPrompt := prompts.NewDatabasePrompt()
	s.AddPrompt(dbPrompt.Definition(), dbPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(wsStore, dbs)
	s.AddResource(resourceHandler.WorkspacesResource(), resourceHandler.HandleWorkspaces)
	s.AddResourceTemplate(resourceHandler.DatabasesTemplate(), resourceHandler.HandleDatabases)

	list, err := wsStore.List()
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("listing workspaces: %w", err)
	}
	logger.Info("server ready", "version", Version, "data_dir", cfg.DataDir, "workspaces", len(list))
	if len(list) == 0 {
		logger.Warn("no workspaces registered; add one with `docket workspace add`")
	}

	return s, cleanup, nil
}

// Tools returns every tool handler bound to env, in registration order.
func Tools(env *tools.Env) []Tool {
	return []Tool{
		// Documents
		tools.NewContentReadTool(env),
		tools.NewContentLocateTool(env),
		tools.NewContentInsertTool(env),
		tools.NewContentDeleteTool(env),
		tools.NewContentReplaceTool(env),

		// Databases
		tools.NewDBListTool(env),
		tools.NewDBCreateTool(env),
		tools.NewDBReadTool(env),
		tools.NewDBAddRowsTool(env),
		tools.NewDBUpdateRowsTool(env),
		tools.NewDBDeleteRowsTool(env),
		tools.NewDBAddColumnTool(env),
		tools.NewDBUpdateColumnTool(env),
		tools.NewDBDeleteColumnTool(env),
		tools.NewDBCreateViewTool(env),
		tools.NewDBListViewsTool(env),
		tools.NewDBDeleteViewTool(env),
		tools.NewDBSetDefaultViewTool(env),

		// Workspaces
		tools.NewWorkspaceListTool(env),
		tools.NewEditHistoryTool(env),
	}
}

// noop is the cleanup returned when construction fails.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use docket effectively.
func serverInstructions() string {
	return `You have access to docket, an MCP server for editing markdown documents and
markdown-backed databases inside registered workspaces.

## WORKSPACES

Every tool except workspace_list and edit_history needs a "workspace" argument:
a registered name or its root path. Call workspace_list first if you do not
know the names. Paths are relative to the workspace root and cannot leave it.

## EDITING DOCUMENTS

1. content_read to see the current text. Offsets are byte offsets into it.
2. content_locate to find exact offsets; never compute them by hand.
3. Prefer content_replace for text changes.
4. Guard positional edits: content_insert with expected_line_before,
   content_delete with expected_content.
5. A result with "success": false changed nothing. Read its hint,
   candidates or occurrences, re-read the document and retry.

## DATABASES

A database is a folder with database.json (schema and views) and one
markdown file per row. The filename is the row title; front matter holds the
column values; the body is free-form content ("_content").

- db_list / db_create / db_read to discover, create and query.
- db_add_rows, db_update_rows, db_delete_rows select rows with either "ids"
  or "where", never both.
- Column and view changes (db_add_column, db_update_column, db_delete_column,
  db_create_view, db_delete_view, db_set_default_view) keep rows and views
  consistent: renames and deletes cascade.
- db_read with "view" applies only the view's first filter and first sort,
  and only when you did not pass your own filters or sort.

## HISTORY

edit_history shows what was changed through this server, newest first,
including rejected attempts. Use "query" to search edit summaries.`
}
