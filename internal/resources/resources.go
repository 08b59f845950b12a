// Package resources implements MCP resource handlers.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (docket://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/docket/internal/database"
	"github.com/HendryAvila/docket/internal/workspace"
)

const (
	// WorkspacesURI lists registered workspaces.
	WorkspacesURI = "docket://workspaces"
	// DatabasesTemplate lists the databases of one workspace.
	DatabasesTemplate = "docket://{workspace}/databases"

	scheme = "docket://"
)

// Workspaces is the registry view the handlers need.
type Workspaces interface {
	Resolve(identifier string) (*workspace.Workspace, error)
	List() ([]workspace.Workspace, error)
}

// Handler manages docket resource endpoints.
type Handler struct {
	workspaces Workspaces
	databases  *database.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(ws Workspaces, dbs *database.Store) *Handler {
	return &Handler{workspaces: ws, databases: dbs}
}

// WorkspacesResource returns the MCP resource definition for the registry.
func (h *Handler) WorkspacesResource() mcp.Resource {
	return mcp.NewResource(
		WorkspacesURI,
		"Workspaces",
		mcp.WithResourceDescription("Registered workspaces and their root directories"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleWorkspaces returns the registered workspaces as JSON.
func (h *Handler) HandleWorkspaces(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := h.workspaces.List()
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	if list == nil {
		list = []workspace.Workspace{}
	}
	return jsonResource(req.Params.URI, list)
}

// DatabasesTemplate returns the MCP resource template for per-workspace
// database listings.
func (h *Handler) DatabasesTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		DatabasesTemplate,
		"Workspace databases",
		mcp.WithTemplateDescription("Databases discovered in a workspace, with row, column and view counts"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleDatabases lists the databases of the workspace named in the URI.
func (h *Handler) HandleDatabases(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name, ok := workspaceFromURI(req.Params.URI)
	if !ok {
		return errorResource(req.Params.URI, "expected "+DatabasesTemplate), nil
	}
	ws, err := h.workspaces.Resolve(name)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	dbs, err := h.databases.List(ws.Root)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if dbs == nil {
		dbs = []database.Summary{}
	}
	return jsonResource(req.Params.URI, dbs)
}

// workspaceFromURI extracts {workspace} from docket://{workspace}/databases.
func workspaceFromURI(uri string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, scheme)
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, "/databases")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
