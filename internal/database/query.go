package database

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"

	"github.com/HendryAvila/docket/internal/faults"
	"github.com/HendryAvila/docket/internal/frontmatter"
)

// Read loads the schema and rows of a database and applies the query.
//
// The pipeline runs search, explicit filters, explicit sort, then the
// view, then the limit. A view contributes only its first filter, and
// only when no explicit filters were given; likewise its first sort is
// skipped when an explicit sort was given.
func (s *Store) Read(root, dbPath string, q Query) (*ReadResult, error) {
	dir, err := s.dir(root, dbPath)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(root, dbPath, dir)
	if err != nil {
		return nil, err
	}

	var view *View
	if q.ViewID != "" {
		v, ok := cfg.View(q.ViewID)
		if !ok {
			return nil, faults.NotFound("view", q.ViewID, cfg.ViewIDs())
		}
		view = v
	}

	records, err := s.loadRecords(root, dir)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = rec.Row
	}

	if q.Search != "" {
		rows = search(rows, q.Search)
	}
	if q.Filters != nil {
		rows = applyFilters(rows, q.Filters)
	}
	if q.Sort != nil {
		s.sortRows(rows, *q.Sort)
	}
	if view != nil {
		if q.Filters == nil && len(view.Filters) > 0 {
			rows = applyFilters(rows, view.Filters[:1])
		}
		if q.Sort == nil && len(view.Sorts) > 0 {
			s.sortRows(rows, view.Sorts[0])
		}
	}

	matched := len(rows)
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	for i := range rows {
		rows[i] = s.preview(rows[i])
	}

	return &ReadResult{Path: dbPath, Config: cfg, Rows: rows, Total: len(rows), Matched: matched}, nil
}

// --- Search ---

// search keeps rows whose title or any string-valued field contains q,
// case-insensitively. List fields are searched element by element.
func search(rows []Row, q string) []Row {
	needle := strings.ToLower(q)
	return slices.DeleteFunc(rows, func(r Row) bool {
		if strings.Contains(strings.ToLower(r.Title), needle) {
			return false
		}
		for _, k := range r.Fields.Keys() {
			v, _ := r.Fields.Get(k)
			if s, ok := v.Str(); ok && strings.Contains(strings.ToLower(s), needle) {
				return false
			}
			if items, ok := v.Strings(); ok {
				for _, item := range items {
					if strings.Contains(strings.ToLower(item), needle) {
						return false
					}
				}
			}
		}
		return true
	})
}

// --- Filters ---

func applyFilters(rows []Row, filters []Filter) []Row {
	return slices.DeleteFunc(rows, func(r Row) bool {
		for _, f := range filters {
			if !matchFilter(r, f) {
				return true
			}
		}
		return false
	})
}

// matchFilter evaluates one predicate. Unknown operators pass every row.
func matchFilter(r Row, f Filter) bool {
	got, present := fieldValue(r, f.Column)
	target, err := frontmatter.ValueFromAny(f.Value)
	if err != nil {
		target = frontmatter.Null()
	}

	switch f.Operator {
	case OpIsEmpty:
		return !present || got.IsEmpty()
	case OpIsNotEmpty:
		return present && !got.IsEmpty()
	case OpEquals:
		return present && equalsValue(got, target)
	case OpNotEquals:
		return !present || !equalsValue(got, target)
	case OpContains:
		return present && containsValue(got, target)
	case OpNotContains:
		return !present || !containsValue(got, target)
	case OpGreaterThan:
		return present && compareValues(got, target) > 0
	case OpLessThan:
		return present && compareValues(got, target) < 0
	default:
		return true
	}
}

// equalsValue compares display text; a list equals target when one of its
// elements does.
func equalsValue(got, target frontmatter.Value) bool {
	want := target.Text()
	if items, ok := got.Strings(); ok && target.Kind() != frontmatter.KindList {
		return slices.Contains(items, want)
	}
	return got.Text() == want
}

func containsValue(got, target frontmatter.Value) bool {
	want := strings.ToLower(target.Text())
	if items, ok := got.Strings(); ok {
		for _, item := range items {
			if strings.Contains(strings.ToLower(item), want) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(got.Text()), want)
}

// compareValues orders numerically when both sides read as numbers and
// lexically otherwise.
func compareValues(a, b frontmatter.Value) int {
	if x, ok := asNumber(a); ok {
		if y, ok := asNumber(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(a.Text(), b.Text())
}

func asNumber(v frontmatter.Value) (float64, bool) {
	if n, ok := v.Num(); ok {
		return n, true
	}
	if s, ok := v.Str(); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return n, err == nil
	}
	return 0, false
}

// --- Sort ---

// sortRows sorts in place, stably. Numbers compare numerically when both
// sides are numbers; everything else uses locale-aware collation, with
// missing values sorting as the empty string.
func (s *Store) sortRows(rows []Row, srt Sort) {
	col := collate.New(s.lang)
	desc := srt.Direction == SortDesc

	slices.SortStableFunc(rows, func(a, b Row) int {
		av, _ := fieldValue(a, srt.Column)
		bv, _ := fieldValue(b, srt.Column)

		var c int
		x, xok := av.Num()
		y, yok := bv.Num()
		if xok && yok {
			switch {
			case x < y:
				c = -1
			case x > y:
				c = 1
			}
		} else {
			c = col.CompareString(av.Text(), bv.Text())
		}
		if desc {
			return -c
		}
		return c
	})
}
