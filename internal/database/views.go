package database

import (
	"strings"

	"github.com/HendryAvila/docket/internal/faults"
)

// CreateView adds a saved view. The id defaults to a slug of the name.
// Columns referenced by filters, sorts and grouping must exist.
func (s *Store) CreateView(root, dbPath string, v View) (*Config, error) {
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(root, dbPath, dir)
	if err != nil {
		return nil, err
	}

	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return nil, faults.InvalidParams("view name is required")
	}
	v.ID = strings.TrimSpace(v.ID)
	if v.ID == "" {
		v.ID = identifier(v.Name, "view")
	}
	if _, exists := cfg.View(v.ID); exists {
		return nil, faults.InvalidParams("view %q already exists", v.ID)
	}
	if v.Type == "" {
		v.Type = ViewTable
	}
	if !validViewTypes[v.Type] {
		return nil, faults.InvalidParams("invalid view type %q: must be one of: table, board, list, calendar", v.Type)
	}

	if err := checkViewColumns(cfg, v); err != nil {
		return nil, err
	}
	for i := range v.Sorts {
		if v.Sorts[i].Direction != SortDesc {
			v.Sorts[i].Direction = SortAsc
		}
	}

	cfg.Views = append(cfg.Views, v)
	if err := s.saveConfig(dir, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkViewColumns(cfg *Config, v View) error {
	refs := make([]string, 0, len(v.Filters)+len(v.Sorts)+2)
	for _, f := range v.Filters {
		refs = append(refs, f.Column)
	}
	for _, srt := range v.Sorts {
		refs = append(refs, srt.Column)
	}
	if v.GroupBy != "" {
		refs = append(refs, v.GroupBy)
	}
	if v.RowGroupBy != "" {
		refs = append(refs, v.RowGroupBy)
	}
	for _, id := range refs {
		if _, ok := cfg.Column(id); !ok {
			return faults.NotFound("column", id, cfg.ColumnIDs())
		}
	}
	return nil
}

// ListViews returns the views and the default view id.
func (s *Store) ListViews(root, dbPath string) ([]View, string, error) {
	cfg, err := s.Load(root, dbPath)
	if err != nil {
		return nil, "", err
	}
	return cfg.Views, cfg.DefaultView, nil
}

// DeleteView removes a view. The last view cannot be deleted; deleting the
// default view promotes the first remaining one.
func (s *Store) DeleteView(root, dbPath, id string) (*Config, error) {
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(root, dbPath, dir)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, v := range cfg.Views {
		if v.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, faults.NotFound("view", id, cfg.ViewIDs())
	}
	if len(cfg.Views) == 1 {
		return nil, faults.InvalidParams("view %q is the only view and cannot be deleted", id)
	}

	cfg.Views = append(cfg.Views[:idx], cfg.Views[idx+1:]...)
	if cfg.DefaultView == id {
		cfg.DefaultView = cfg.Views[0].ID
	}
	if err := s.saveConfig(dir, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDefaultView marks an existing view as the default.
func (s *Store) SetDefaultView(root, dbPath, id string) (*Config, error) {
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(root, dbPath, dir)
	if err != nil {
		return nil, err
	}
	if _, ok := cfg.View(id); !ok {
		return nil, faults.NotFound("view", id, cfg.ViewIDs())
	}
	cfg.DefaultView = id
	if err := s.saveConfig(dir, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
