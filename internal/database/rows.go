package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/HendryAvila/docket/internal/faults"
	"github.com/HendryAvila/docket/internal/filestore"
	"github.com/HendryAvila/docket/internal/frontmatter"
)

const rowExt = ".md"

// record is a row with its full body, used by mutations.
type record struct {
	Row
	body string
}

// rowFiles lists the markdown files of a database directory, sorted by name.
func (s *Store) rowFiles(dir string) ([]string, error) {
	entries, err := s.fs.ListDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, rowExt) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *Store) loadRecords(root, dir string) ([]record, error) {
	names, err := s.rowFiles(dir)
	if err != nil {
		return nil, faults.Internal(err, "listing rows in %s", filestore.Relative(root, dir))
	}

	out := make([]record, 0, len(names))
	for _, name := range names {
		full := filepath.Join(dir, name)
		text, err := s.fs.ReadText(full)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, faults.Internal(err, "reading row %s", name)
		}
		fields, body := frontmatter.Parse(text)
		out = append(out, record{
			Row: Row{
				ID:      filestore.Relative(root, full),
				Path:    full,
				Title:   strings.TrimSuffix(name, rowExt),
				Fields:  fields,
				Content: body,
			},
			body: body,
		})
	}
	return out, nil
}

func (s *Store) writeRecord(path string, fields frontmatter.Fields, body string) error {
	if err := s.fs.WriteText(path, frontmatter.Serialize(fields, body)); err != nil {
		return faults.Internal(err, "writing row %s", filepath.Base(path))
	}
	return nil
}

func (s *Store) preview(r Row) Row {
	r.Content = truncate(r.Content, s.previewLen)
	return r
}

// --- Add ---

// AddRows creates one file per input. Filenames are slugified titles made
// unique with -1, -2, ...; a missing body becomes "# {title}\n\n".
func (s *Store) AddRows(root, dbPath string, inputs []RowInput) ([]Row, error) {
	if len(inputs) == 0 {
		return nil, faults.InvalidParams("at least one row is required")
	}
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadConfig(root, dbPath, dir); err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(inputs))
	for _, in := range inputs {
		title := "Untitled"
		if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
			title = strings.TrimSpace(*in.Title)
		}

		stem := uniqueStem(Slugify(title), func(stem string) bool {
			return s.fs.Exists(filepath.Join(dir, stem+rowExt))
		})
		full := filepath.Join(dir, stem+rowExt)

		fields := in.Fields.Clone()
		fields.Delete(TitleColumn)
		fields.Delete(ContentKey)

		body := "# " + title + "\n\n"
		if in.Content != nil {
			body = *in.Content
		}

		if err := s.writeRecord(full, fields, body); err != nil {
			return nil, err
		}
		out = append(out, s.preview(Row{
			ID:      filestore.Relative(root, full),
			Path:    full,
			Title:   stem,
			Fields:  fields,
			Content: body,
		}))
	}
	return out, nil
}

// --- Update ---

// UpdateRows merges changes into the front matter of every selected row.
// A title change writes the row under its new filename before removing
// the old file; Content replaces the body.
func (s *Store) UpdateRows(root, dbPath string, changes RowInput, sel Selector) ([]Row, error) {
	if err := sel.validate(); err != nil {
		return nil, err
	}
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadConfig(root, dbPath, dir); err != nil {
		return nil, err
	}
	records, err := s.loadRecords(root, dir)
	if err != nil {
		return nil, err
	}

	updates := changes.Fields.Clone()
	updates.Delete(TitleColumn)
	updates.Delete(ContentKey)

	var out []Row
	for _, rec := range records {
		if !sel.matches(rec.Row) {
			continue
		}

		fields := rec.Fields.Clone()
		fields.Merge(updates)
		body := rec.body
		if changes.Content != nil {
			body = *changes.Content
		}

		target := rec.Path
		title := rec.Title
		if changes.Title != nil && strings.TrimSpace(*changes.Title) != "" && *changes.Title != rec.Title {
			stem := Slugify(*changes.Title)
			if stem != rec.Title {
				stem = uniqueStem(stem, func(stem string) bool {
					return s.fs.Exists(filepath.Join(dir, stem+rowExt))
				})
				target = filepath.Join(dir, stem+rowExt)
				title = stem
			}
		}

		if err := s.writeRecord(target, fields, body); err != nil {
			return nil, err
		}
		if target != rec.Path {
			if err := s.fs.Remove(rec.Path); err != nil {
				return nil, faults.Internal(err, "removing renamed row %s", rec.ID)
			}
		}

		out = append(out, s.preview(Row{
			ID:      filestore.Relative(root, target),
			Path:    target,
			Title:   title,
			Fields:  fields,
			Content: body,
		}))
	}
	return out, nil
}

// --- Delete ---

// DeleteRows removes every selected row file and returns the deleted rows.
func (s *Store) DeleteRows(root, dbPath string, sel Selector) ([]Row, error) {
	if err := sel.validate(); err != nil {
		return nil, err
	}
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadConfig(root, dbPath, dir); err != nil {
		return nil, err
	}
	records, err := s.loadRecords(root, dir)
	if err != nil {
		return nil, err
	}

	var out []Row
	for _, rec := range records {
		if !sel.matches(rec.Row) {
			continue
		}
		if err := s.fs.Remove(rec.Path); err != nil {
			return nil, faults.Internal(err, "deleting row %s", rec.ID)
		}
		out = append(out, s.preview(rec.Row))
	}
	return out, nil
}

// --- Selection ---

func (sel Selector) validate() error {
	hasIDs, hasWhere := len(sel.IDs) > 0, len(sel.Where) > 0
	switch {
	case hasIDs && hasWhere:
		return faults.InvalidParams("select rows with either ids or where, not both")
	case !hasIDs && !hasWhere:
		return faults.InvalidParams("select rows with ids or where")
	}
	return nil
}

// matches accepts a row named in IDs (by id, absolute path, file name or
// title), or one whose fields equal every Where entry after string
// normalization.
func (sel Selector) matches(r Row) bool {
	if len(sel.IDs) > 0 {
		for _, id := range sel.IDs {
			id = strings.TrimSpace(id)
			if id == r.ID || id == r.Path || id == r.Title || id == filepath.Base(r.Path) ||
				strings.TrimSuffix(id, rowExt) == strings.TrimSuffix(r.ID, rowExt) {
				return true
			}
		}
		return false
	}

	for key, want := range sel.Where {
		got, ok := fieldValue(r, key)
		if !ok {
			return false
		}
		wantValue, err := frontmatter.ValueFromAny(want)
		if err != nil || got.Text() != wantValue.Text() {
			return false
		}
	}
	return true
}

// fieldValue resolves a column against a row; title comes from the filename.
func fieldValue(r Row, column string) (frontmatter.Value, bool) {
	if column == TitleColumn {
		return frontmatter.String(r.Title), true
	}
	return r.Fields.Get(column)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
