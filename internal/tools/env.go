package tools

import (
	"log/slog"
	"sync"

	"github.com/HendryAvila/docket/internal/database"
	"github.com/HendryAvila/docket/internal/editor"
	"github.com/HendryAvila/docket/internal/workspace"
)

// WorkspaceResolver maps a workspace identifier onto its root directory.
type WorkspaceResolver interface {
	Resolve(identifier string) (*workspace.Workspace, error)
	List() ([]workspace.Workspace, error)
}

// Journal records edits and serves them back.
type Journal interface {
	Record(e workspace.Edit) (int64, error)
	History(opts workspace.HistoryOptions) ([]workspace.Edit, error)
}

// Env bundles the collaborators every tool handler needs (DIP): tools
// depend on the resolver and journal interfaces, and on the editor and
// database store, which themselves sit on a filestore.Store.
type Env struct {
	Workspaces WorkspaceResolver
	Journal    Journal
	Editor     *editor.Editor
	Databases  *database.Store
	Logger     *slog.Logger

	locks workspaceLocks
}

// NewEnv creates an Env. A nil logger falls back to slog.Default().
func NewEnv(ws WorkspaceResolver, journal Journal, ed *editor.Editor, dbs *database.Store, logger *slog.Logger) *Env {
	if logger == nil {
		logger = slog.Default()
	}
	return &Env{
		Workspaces: ws,
		Journal:    journal,
		Editor:     ed,
		Databases:  dbs,
		Logger:     logger,
	}
}

// workspaceLocks serializes mutations per workspace root so two tool calls
// dispatched concurrently never interleave read-modify-write cycles on the
// same files.
type workspaceLocks struct {
	mu    sync.Mutex
	roots map[string]*sync.Mutex
}

func (l *workspaceLocks) lock(root string) func() {
	l.mu.Lock()
	if l.roots == nil {
		l.roots = map[string]*sync.Mutex{}
	}
	m, ok := l.roots[root]
	if !ok {
		m = &sync.Mutex{}
		l.roots[root] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
