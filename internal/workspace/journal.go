package workspace

import (
	"fmt"
	"strings"
)

// Edit is one journaled mutation made through a tool.
type Edit struct {
	ID        int64  `json:"id"`
	Workspace string `json:"workspace"`
	Tool      string `json:"tool"`
	Target    string `json:"target"`
	Summary   string `json:"summary"`
	Success   bool   `json:"success"`
	CreatedAt string `json:"created_at"`
}

// HistoryOptions filters History. An empty Query lists the most recent
// edits; otherwise the journal is searched with FTS5.
type HistoryOptions struct {
	Workspace string
	Target    string
	Query     string
	Limit     int
}

// Record appends an edit to the journal and returns its id.
func (s *Store) Record(e Edit) (int64, error) {
	success := 0
	if e.Success {
		success = 1
	}
	res, err := s.execHook(
		`INSERT INTO edits (workspace, tool, target, summary, success) VALUES (?, ?, ?, ?, ?)`,
		e.Workspace, e.Tool, e.Target, Truncate(e.Summary, s.cfg.MaxSummaryLength), success,
	)
	if err != nil {
		return 0, fmt.Errorf("record edit: %w", err)
	}
	return res.LastInsertId()
}

// History returns journaled edits, newest first.
func (s *Store) History(opts HistoryOptions) ([]Edit, error) {
	limit := opts.Limit
	if limit <= 0 || limit > s.cfg.MaxHistory {
		limit = s.cfg.MaxHistory
	}

	var sqlStr string
	var args []any
	if ftsQuery := sanitizeFTS(opts.Query); ftsQuery != "" {
		sqlStr = `
			SELECT e.id, e.workspace, e.tool, e.target, e.summary, e.success, e.created_at
			FROM edits_fts fts
			JOIN edits e ON e.id = fts.rowid
			WHERE edits_fts MATCH ?`
		args = append(args, ftsQuery)
	} else {
		sqlStr = `
			SELECT e.id, e.workspace, e.tool, e.target, e.summary, e.success, e.created_at
			FROM edits e
			WHERE 1 = 1`
	}

	if opts.Workspace != "" {
		sqlStr += " AND e.workspace = ?"
		args = append(args, opts.Workspace)
	}
	if opts.Target != "" {
		sqlStr += " AND e.target = ?"
		args = append(args, opts.Target)
	}
	sqlStr += " ORDER BY e.id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.queryHook(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("edit history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Edit
	for rows.Next() {
		var e Edit
		var success int
		if err := rows.Scan(&e.ID, &e.Workspace, &e.Tool, &e.Target, &e.Summary, &success, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Success = success != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// Truncate shortens s to max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// sanitizeFTS quotes each word so user input never reaches the FTS5 query
// syntax.
func sanitizeFTS(query string) string {
	var words []string
	for _, w := range strings.Fields(query) {
		if w = strings.ReplaceAll(w, `"`, ""); w != "" {
			words = append(words, `"`+w+`"`)
		}
	}
	return strings.Join(words, " ")
}
