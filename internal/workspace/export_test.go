package workspace

import "database/sql"

// DB exposes the internal *sql.DB for test helpers in workspace_test.
// This file only compiles during `go test`.
func (s *Store) DB() *sql.DB {
	return s.db
}

// FailExec makes every subsequent Exec return err.
func (s *Store) FailExec(err error) {
	s.hooks.exec = func(execer, string, ...any) (sql.Result, error) {
		return nil, err
	}
}

// SanitizeFTS exposes sanitizeFTS for tests.
var SanitizeFTS = sanitizeFTS
