package workspace

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/HendryAvila/docket/internal/faults"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Workspace is a named root directory the tools may operate in.
type Workspace struct {
	Name      string `json:"name"`
	Root      string `json:"root"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Register adds a workspace or points an existing name at a new root.
// The root must be an existing directory; it is stored as an absolute path.
func (s *Store) Register(name, root string) (*Workspace, error) {
	if !namePattern.MatchString(name) {
		return nil, faults.InvalidParams("workspace name %q must start with a letter or digit and contain only letters, digits, '-' and '_'", name)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, faults.InvalidParams("workspace root %q: %v", root, err)
	}
	st, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, faults.InvalidParams("workspace root %s does not exist", abs)
		}
		return nil, faults.Internal(err, "checking workspace root %s", abs)
	}
	if !st.IsDir() {
		return nil, faults.InvalidParams("workspace root %s is not a directory", abs)
	}

	if _, err := s.execHook(`
		INSERT INTO workspaces (name, root) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET root = excluded.root, updated_at = datetime('now')`,
		name, abs,
	); err != nil {
		return nil, fmt.Errorf("register workspace: %w", err)
	}
	return s.Get(name)
}

// Get returns a workspace by name, or nil if it is not registered.
func (s *Store) Get(name string) (*Workspace, error) {
	var w Workspace
	err := s.db.QueryRow(
		`SELECT name, root, created_at, updated_at FROM workspaces WHERE name = ?`, name,
	).Scan(&w.Name, &w.Root, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &w, nil
}

// Resolve returns a registered workspace by name or by root path. Unknown
// identifiers are reported as not found together with the registered names.
func (s *Store) Resolve(identifier string) (*Workspace, error) {
	w, err := s.Get(identifier)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}

	all, err := s.List()
	if err != nil {
		return nil, err
	}
	if filepath.IsAbs(identifier) {
		want := filepath.Clean(identifier)
		for i := range all {
			if all[i].Root == want {
				return &all[i], nil
			}
		}
	}

	names := make([]string, len(all))
	for i, ws := range all {
		names[i] = ws.Name
	}
	return nil, faults.NotFound("workspace", identifier, names)
}

// List returns every registered workspace ordered by name.
func (s *Store) List() ([]Workspace, error) {
	rows, err := s.queryHook(`SELECT name, root, created_at, updated_at FROM workspaces ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Workspace
	for rows.Next() {
		var w Workspace
		if err := rows.Scan(&w.Name, &w.Root, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Remove unregisters a workspace and drops its journal. Files under the
// root are not touched.
func (s *Store) Remove(name string) error {
	res, err := s.execHook(`DELETE FROM workspaces WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	if n == 0 {
		_, err := s.Resolve(name)
		return err
	}
	if _, err := s.execHook(`DELETE FROM edits WHERE workspace = ?`, name); err != nil {
		return fmt.Errorf("remove workspace history: %w", err)
	}
	return nil
}

// Sync registers every name→root pair, typically from the config file.
func (s *Store) Sync(roots map[string]string) error {
	for name, root := range roots {
		if _, err := s.Register(name, root); err != nil {
			return fmt.Errorf("workspace %q: %w", name, err)
		}
	}
	return nil
}
