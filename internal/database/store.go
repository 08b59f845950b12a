package database

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/HendryAvila/docket/internal/faults"
	"github.com/HendryAvila/docket/internal/filestore"
)

// DefaultPreviewLength bounds _content in listed rows.
const DefaultPreviewLength = 200

// Store manages databases below a workspace root. Every method takes the
// root explicitly so one Store serves every workspace.
type Store struct {
	fs         filestore.Store
	lang       language.Tag
	previewLen int
	now        func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLanguage sets the collation language used to sort text values.
func WithLanguage(tag language.Tag) StoreOption {
	return func(s *Store) { s.lang = tag }
}

// WithPreviewLength overrides the _content preview length.
func WithPreviewLength(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.previewLen = n
		}
	}
}

// NewStore creates a Store over fs.
func NewStore(fs filestore.Store, opts ...StoreOption) *Store {
	s := &Store{
		fs:         fs,
		lang:       language.English,
		previewLen: DefaultPreviewLength,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultColumns is the schema of a database created without columns.
func DefaultColumns() []Column {
	return []Column{
		{ID: TitleColumn, Name: "Title", Type: TypeTitle},
		{ID: "status", Name: "Status", Type: TypeSelect, Options: []Option{
			{Value: "Todo", Color: "gray"},
			{Value: "In Progress", Color: "blue"},
			{Value: "Done", Color: "green"},
		}},
		{ID: "tags", Name: "Tags", Type: TypeMultiSelect, Options: []Option{}},
	}
}

// DefaultViews is the view set of a new database.
func DefaultViews() []View {
	return []View{
		{ID: "default", Name: "All items", Type: ViewTable, Filters: []Filter{}, Sorts: []Sort{}},
	}
}

// --- Paths and config I/O ---

func (s *Store) dir(root, dbPath string) (string, error) {
	dir, err := filestore.Resolve(root, dbPath)
	if err != nil {
		return "", faults.InvalidParams("invalid database path: %v", err)
	}
	return dir, nil
}

// Load reads the config of the database at dbPath. A directory without
// database.json is reported as not found, listing the databases that do
// exist.
func (s *Store) Load(root, dbPath string) (*Config, error) {
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	return s.loadConfig(root, dbPath, dir)
}

func (s *Store) loadConfig(root, dbPath, dir string) (*Config, error) {
	raw, err := s.fs.ReadText(filepath.Join(dir, ConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			var known []string
			if summaries, lerr := s.List(root); lerr == nil {
				for _, sum := range summaries {
					known = append(known, sum.Path)
				}
			}
			return nil, faults.NotFound("database", dbPath, known)
		}
		return nil, faults.Internal(err, "reading %s config", dbPath)
	}

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, faults.Internal(err, "parsing %s", path.Join(dbPath, ConfigFile))
	}
	cfg.normalize()
	return &cfg, nil
}

func (s *Store) saveConfig(dir string, cfg *Config) error {
	cfg.normalize()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return faults.Internal(err, "encoding database config")
	}
	if err := s.fs.WriteText(filepath.Join(dir, ConfigFile), string(data)+"\n"); err != nil {
		return faults.Internal(err, "writing database config")
	}
	return nil
}

// --- Create ---

// Create makes a new database named name at folder/slug(name) and returns
// its config and workspace-relative path. Columns default to
// DefaultColumns; a title column is added when missing.
func (s *Store) Create(root, name string, columns []Column, folder string) (*Config, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", faults.InvalidParams("database name is required")
	}

	dbPath := path.Join(strings.Trim(filepath.ToSlash(folder), "/"), Slugify(name))
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, "", err
	}
	if s.fs.Exists(filepath.Join(dir, ConfigFile)) {
		return nil, "", faults.InvalidParams("a database already exists at %s", dbPath)
	}

	cols, err := prepareColumns(columns)
	if err != nil {
		return nil, "", err
	}

	cfg := &Config{
		Name:        name,
		Columns:     cols,
		Views:       DefaultViews(),
		DefaultView: "default",
		Created:     s.now().UTC().Format(time.RFC3339),
	}

	if err := s.fs.EnsureDir(dir); err != nil {
		return nil, "", faults.Internal(err, "creating %s", dbPath)
	}
	if err := s.saveConfig(dir, cfg); err != nil {
		return nil, "", err
	}
	return cfg, dbPath, nil
}

func prepareColumns(columns []Column) ([]Column, error) {
	if len(columns) == 0 {
		return DefaultColumns(), nil
	}

	seen := map[string]bool{}
	out := make([]Column, 0, len(columns)+1)
	for _, c := range columns {
		col, err := prepareColumn(c)
		if err != nil {
			return nil, err
		}
		if seen[col.ID] {
			return nil, faults.InvalidParams("duplicate column id %q", col.ID)
		}
		if col.ID == TitleColumn {
			col.Type = TypeTitle
		} else if col.Type == TypeTitle {
			return nil, faults.InvalidParams("column %q cannot use the title type: only the %q column is backed by the filename", col.ID, TitleColumn)
		}
		seen[col.ID] = true
		out = append(out, col)
	}

	if !seen[TitleColumn] {
		out = append([]Column{{ID: TitleColumn, Name: "Title", Type: TypeTitle}}, out...)
	}
	return out, nil
}

// prepareColumn fills defaults (id from name, name from id, type text) and
// normalizes option colors.
func prepareColumn(c Column) (Column, error) {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	if c.ID == "" && c.Name == "" {
		return Column{}, faults.InvalidParams("column needs an id or a name")
	}
	if c.ID == "" {
		c.ID = identifier(c.Name, "column")
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	if c.Type == "" {
		c.Type = TypeText
	}
	if err := ValidateColumnType(c.Type); err != nil {
		return Column{}, faults.InvalidParams("column %q: %v", c.ID, err)
	}
	if c.Type == TypeSelect || c.Type == TypeMultiSelect {
		if c.Options == nil {
			c.Options = []Option{}
		}
		c.Options = normalizeOptions(c.Options)
	} else {
		c.Options = nil
	}
	return c, nil
}

// --- Discovery ---

// List discovers every database below root, depth first. Recursion stops
// at a database directory, so nested databases are not reported, and
// hidden directories are skipped.
func (s *Store) List(root string) ([]Summary, error) {
	var out []Summary
	if err := s.discover(root, root, &out); err != nil {
		return nil, faults.Internal(err, "listing databases")
	}
	return out, nil
}

func (s *Store) discover(root, dir string, out *[]Summary) error {
	entries, err := s.fs.ListDir(dir)
	if err != nil {
		if os.IsNotExist(err) && dir == root {
			return nil
		}
		return err
	}

	for _, e := range entries {
		if !e.IsDir() && e.Name() == ConfigFile {
			*out = append(*out, s.summarize(root, dir))
			return nil
		}
	}

	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if err := s.discover(root, filepath.Join(dir, e.Name()), out); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) summarize(root, dir string) Summary {
	sum := Summary{Path: filestore.Relative(root, dir)}
	cfg, err := s.loadConfig(root, sum.Path, dir)
	if err != nil {
		sum.Error = err.Error()
		return sum
	}
	sum.Name = cfg.Name
	sum.Columns = len(cfg.Columns)
	sum.Views = len(cfg.Views)
	if names, err := s.rowFiles(dir); err == nil {
		sum.Rows = len(names)
	}
	return sum
}
