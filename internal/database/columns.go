package database

import (
	"slices"
	"strings"

	"github.com/HendryAvila/docket/internal/faults"
	"github.com/HendryAvila/docket/internal/frontmatter"
)

// ColumnChanges is a partial column update. Nil fields are left alone.
type ColumnChanges struct {
	ID      *string
	Name    *string
	Type    *ColumnType
	Options *[]Option
}

// AddColumn appends col to the schema. When backfill is non-nil its value
// is written into every existing row that lacks the column.
func (s *Store) AddColumn(root, dbPath string, col Column, backfill *frontmatter.Value) (*Config, error) {
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(root, dbPath, dir)
	if err != nil {
		return nil, err
	}

	col, err = prepareColumn(col)
	if err != nil {
		return nil, err
	}
	if col.Type == TypeTitle {
		return nil, faults.InvalidParams("only the %q column may use the title type", TitleColumn)
	}
	if _, exists := cfg.Column(col.ID); exists {
		return nil, faults.InvalidParams("column %q already exists", col.ID)
	}

	cfg.Columns = append(cfg.Columns, col)
	if err := s.saveConfig(dir, cfg); err != nil {
		return nil, err
	}

	if backfill != nil && !backfill.IsNull() {
		records, err := s.loadRecords(root, dir)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if rec.Fields.Has(col.ID) {
				continue
			}
			fields := rec.Fields.Clone()
			fields.Set(col.ID, *backfill)
			if err := s.writeRecord(rec.Path, fields, rec.body); err != nil {
				return nil, err
			}
		}
	}
	return cfg, nil
}

// UpdateColumn changes a column's metadata. Renaming the id rewrites the
// key in every row and every view reference. The title column keeps its
// id and type.
func (s *Store) UpdateColumn(root, dbPath, id string, changes ColumnChanges) (*Config, error) {
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(root, dbPath, dir)
	if err != nil {
		return nil, err
	}
	col, ok := cfg.Column(id)
	if !ok {
		return nil, faults.NotFound("column", id, cfg.ColumnIDs())
	}

	newID := id
	if changes.ID != nil {
		newID = strings.TrimSpace(*changes.ID)
		if newID == "" {
			return nil, faults.InvalidParams("column id must not be empty")
		}
		if newID != id {
			if id == TitleColumn {
				return nil, faults.InvalidParams("the %q column cannot be renamed", TitleColumn)
			}
			if _, exists := cfg.Column(newID); exists {
				return nil, faults.InvalidParams("column %q already exists", newID)
			}
		}
	}

	if changes.Type != nil {
		t := *changes.Type
		if err := ValidateColumnType(t); err != nil {
			return nil, faults.InvalidParams("column %q: %v", id, err)
		}
		if id == TitleColumn && t != TypeTitle {
			return nil, faults.InvalidParams("the %q column must keep the title type", TitleColumn)
		}
		if id != TitleColumn && t == TypeTitle {
			return nil, faults.InvalidParams("only the %q column may use the title type", TitleColumn)
		}
		col.Type = t
	}
	if changes.Name != nil && strings.TrimSpace(*changes.Name) != "" {
		col.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Options != nil {
		col.Options = normalizeOptions(*changes.Options)
	}
	if col.Type != TypeSelect && col.Type != TypeMultiSelect {
		col.Options = nil
	} else if col.Options == nil {
		col.Options = []Option{}
	}
	col.ID = newID

	if newID != id {
		renameViewReferences(cfg, id, newID)
	}
	if err := s.saveConfig(dir, cfg); err != nil {
		return nil, err
	}

	if newID != id {
		records, err := s.loadRecords(root, dir)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			fields := rec.Fields.Clone()
			if !fields.Rename(id, newID) {
				continue
			}
			if err := s.writeRecord(rec.Path, fields, rec.body); err != nil {
				return nil, err
			}
		}
	}
	return cfg, nil
}

// DeleteColumn removes a column from the schema, from every view that
// references it and from every row. The title column cannot be deleted.
func (s *Store) DeleteColumn(root, dbPath, id string) (*Config, error) {
	if id == TitleColumn {
		return nil, faults.InvalidParams("the %q column cannot be deleted", TitleColumn)
	}
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(root, dbPath, dir)
	if err != nil {
		return nil, err
	}
	if _, ok := cfg.Column(id); !ok {
		return nil, faults.NotFound("column", id, cfg.ColumnIDs())
	}

	cfg.Columns = slices.DeleteFunc(cfg.Columns, func(c Column) bool { return c.ID == id })
	for i := range cfg.Views {
		v := &cfg.Views[i]
		v.Filters = slices.DeleteFunc(v.Filters, func(f Filter) bool { return f.Column == id })
		v.Sorts = slices.DeleteFunc(v.Sorts, func(srt Sort) bool { return srt.Column == id })
		if v.GroupBy == id {
			v.GroupBy = ""
		}
		if v.RowGroupBy == id {
			v.RowGroupBy = ""
		}
	}
	if err := s.saveConfig(dir, cfg); err != nil {
		return nil, err
	}

	records, err := s.loadRecords(root, dir)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		fields := rec.Fields.Clone()
		if !fields.Delete(id) {
			continue
		}
		if err := s.writeRecord(rec.Path, fields, rec.body); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func renameViewReferences(cfg *Config, oldID, newID string) {
	for i := range cfg.Views {
		v := &cfg.Views[i]
		for j := range v.Filters {
			if v.Filters[j].Column == oldID {
				v.Filters[j].Column = newID
			}
		}
		for j := range v.Sorts {
			if v.Sorts[j].Column == oldID {
				v.Sorts[j].Column = newID
			}
		}
		if v.GroupBy == oldID {
			v.GroupBy = newID
		}
		if v.RowGroupBy == oldID {
			v.RowGroupBy = newID
		}
	}
}
