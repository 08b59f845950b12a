// Package database treats a directory of markdown files plus one
// database.json as a minimal queryable row store.
//
// Each row is a file: the filename is the title, YAML front matter holds
// the column values, and the body is free-form content. The config file
// holds the schema (columns) and saved views (filters, sorts, grouping).
// Rows are not indexed in the config, so row operations never touch it.
package database

import (
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/docket/internal/frontmatter"
)

// ConfigFile is the marker file that turns a directory into a database.
const ConfigFile = "database.json"

// TitleColumn is the protected column backed by the row filename.
const TitleColumn = "title"

// ContentKey carries the row body in row inputs and outputs.
const ContentKey = "_content"

// --- Column types ---

// ColumnType is advisory metadata: values are not validated against it.
type ColumnType string

const (
	TypeTitle       ColumnType = "title"
	TypeText        ColumnType = "text"
	TypeNumber      ColumnType = "number"
	TypeSelect      ColumnType = "select"
	TypeMultiSelect ColumnType = "multiselect"
	TypeCheckbox    ColumnType = "checkbox"
	TypeDate        ColumnType = "date"
	TypeURL         ColumnType = "url"
)

var validColumnTypes = map[ColumnType]bool{
	TypeTitle:       true,
	TypeText:        true,
	TypeNumber:      true,
	TypeSelect:      true,
	TypeMultiSelect: true,
	TypeCheckbox:    true,
	TypeDate:        true,
	TypeURL:         true,
}

// ColumnTypes lists the accepted column types in display order.
var ColumnTypes = []string{"title", "text", "number", "select", "multiselect", "checkbox", "date", "url"}

// ValidateColumnType returns an error if t is not recognized.
func ValidateColumnType(t ColumnType) error {
	if !validColumnTypes[t] {
		return fmt.Errorf("invalid column type %q: must be one of: text, number, select, multiselect, checkbox, date, url", t)
	}
	return nil
}

// --- Schema ---

// Option is one choice of a select or multiselect column.
type Option struct {
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}

// UnmarshalJSON accepts either {"value": ..., "color": ...} or a bare string.
func (o *Option) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = Option{Value: s}
		return nil
	}
	type plain Option
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("option must be a string or an object with a value: %w", err)
	}
	*o = Option(p)
	return nil
}

// Column is one schema entry.
type Column struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Type    ColumnType `json:"type"`
	Options []Option   `json:"options,omitempty"`
}

// FilterOp is a filter operator.
type FilterOp string

const (
	OpEquals      FilterOp = "equals"
	OpNotEquals   FilterOp = "notEquals"
	OpContains    FilterOp = "contains"
	OpNotContains FilterOp = "notContains"
	OpGreaterThan FilterOp = "greaterThan"
	OpLessThan    FilterOp = "lessThan"
	OpIsEmpty     FilterOp = "isEmpty"
	OpIsNotEmpty  FilterOp = "isNotEmpty"
)

// FilterOps lists the known operators.
var FilterOps = []string{"equals", "notEquals", "contains", "notContains", "greaterThan", "lessThan", "isEmpty", "isNotEmpty"}

// Filter is a single per-row predicate.
type Filter struct {
	Column   string   `json:"column"`
	Operator FilterOp `json:"operator"`
	Value    any      `json:"value,omitempty"`
}

// SortDirection orders a sort.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort orders rows by one column.
type Sort struct {
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction"`
}

// ViewType is how a client renders a view.
type ViewType string

const (
	ViewTable    ViewType = "table"
	ViewBoard    ViewType = "board"
	ViewList     ViewType = "list"
	ViewCalendar ViewType = "calendar"
)

var validViewTypes = map[ViewType]bool{
	ViewTable:    true,
	ViewBoard:    true,
	ViewList:     true,
	ViewCalendar: true,
}

// View is a saved combination of filters, sorts and grouping.
// Only the first filter and the first sort are applied when reading.
type View struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       ViewType `json:"type"`
	Filters    []Filter `json:"filters"`
	Sorts      []Sort   `json:"sorts"`
	GroupBy    string   `json:"groupBy,omitempty"`
	RowGroupBy string   `json:"rowGroupBy,omitempty"`
}

// Config is the root structure persisted as database.json.
type Config struct {
	Name        string   `json:"name"`
	Columns     []Column `json:"columns"`
	Views       []View   `json:"views"`
	DefaultView string   `json:"defaultView"`
	Created     string   `json:"created"`
}

// Column returns the column with the given id.
func (c *Config) Column(id string) (*Column, bool) {
	for i := range c.Columns {
		if c.Columns[i].ID == id {
			return &c.Columns[i], true
		}
	}
	return nil, false
}

// View returns the view with the given id.
func (c *Config) View(id string) (*View, bool) {
	for i := range c.Views {
		if c.Views[i].ID == id {
			return &c.Views[i], true
		}
	}
	return nil, false
}

// ColumnIDs lists column ids in schema order.
func (c *Config) ColumnIDs() []string {
	ids := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		ids[i] = col.ID
	}
	return ids
}

// ViewIDs lists view ids in order.
func (c *Config) ViewIDs() []string {
	ids := make([]string, len(c.Views))
	for i, v := range c.Views {
		ids[i] = v.ID
	}
	return ids
}

// normalize replaces nil slices so database.json always carries arrays.
func (c *Config) normalize() {
	if c.Columns == nil {
		c.Columns = []Column{}
	}
	if c.Views == nil {
		c.Views = []View{}
	}
	for i := range c.Views {
		if c.Views[i].Filters == nil {
			c.Views[i].Filters = []Filter{}
		}
		if c.Views[i].Sorts == nil {
			c.Views[i].Sorts = []Sort{}
		}
	}
}

// --- Rows ---

// Row is one record. ID is the file path relative to the workspace root.
type Row struct {
	ID      string
	Path    string
	Title   string
	Fields  frontmatter.Fields
	Content string
}

// MarshalJSON flattens the row the way callers address it: id, path and
// title first, then every front-matter field, then _content.
func (r Row) MarshalJSON() ([]byte, error) {
	out := frontmatter.NewFields()
	out.Set("id", frontmatter.String(r.ID))
	out.Set("path", frontmatter.String(r.Path))
	out.Set(TitleColumn, frontmatter.String(r.Title))
	for _, k := range r.Fields.Keys() {
		if out.Has(k) || k == ContentKey {
			continue
		}
		v, _ := r.Fields.Get(k)
		out.Set(k, v)
	}
	out.Set(ContentKey, frontmatter.String(r.Content))
	return json.Marshal(out)
}

// RowInput is a row to create or the changes to apply to rows.
// Title and Content are nil when absent.
type RowInput struct {
	Title   *string
	Content *string
	Fields  frontmatter.Fields
}

// RowInputFromMap splits decoded JSON into title, _content and fields.
func RowInputFromMap(m map[string]any) (RowInput, error) {
	var in RowInput
	rest := make(map[string]any, len(m))
	for k, v := range m {
		switch k {
		case TitleColumn:
			s, ok := v.(string)
			if !ok {
				return RowInput{}, fmt.Errorf("title must be a string, got %T", v)
			}
			in.Title = &s
		case ContentKey:
			s, ok := v.(string)
			if !ok {
				return RowInput{}, fmt.Errorf("_content must be a string, got %T", v)
			}
			in.Content = &s
		default:
			rest[k] = v
		}
	}
	fields, err := frontmatter.FieldsFromMap(rest)
	if err != nil {
		return RowInput{}, err
	}
	in.Fields = fields
	return in, nil
}

// Selector picks rows for update or delete. Exactly one mode must be set.
type Selector struct {
	IDs   []string
	Where map[string]any
}

// --- Queries ---

// Query drives Read. Nil Filters and Sort mean "not given", which lets a
// view's stored criteria apply.
type Query struct {
	Search  string
	Filters []Filter
	Sort    *Sort
	ViewID  string
	Limit   int
}

// ReadResult is the schema plus the selected rows. Total counts the
// returned rows; Matched counts them before the limit.
type ReadResult struct {
	Path    string  `json:"path"`
	Config  *Config `json:"config"`
	Rows    []Row   `json:"rows"`
	Total   int     `json:"total"`
	Matched int     `json:"matched"`
}

// Summary describes a discovered database.
type Summary struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Views   int    `json:"views"`
	Error   string `json:"error,omitempty"`
}
