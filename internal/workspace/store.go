// Package workspace keeps the server's own state: the registry of named
// workspace roots and the journal of edits made through the tools.
//
// Both live in one SQLite database under the data directory. Documents and
// databases themselves never go through SQLite; they stay plain files
// under each workspace root.
package workspace

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// DBFile is the SQLite file name inside the data directory.
const DBFile = "docket.db"

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds the store settings.
type Config struct {
	DataDir          string
	MaxHistory       int
	MaxSummaryLength int
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:          filepath.Join(home, ".docket"),
		MaxHistory:       50,
		MaxSummaryLength: 500,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the registry and journal backed by SQLite + FTS5.
type Store struct {
	db    *sql.DB
	cfg   Config
	hooks storeHooks
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

type storeHooks struct {
	exec  func(db execer, query string, args ...any) (sql.Result, error)
	query func(db queryer, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) execHook(query string, args ...any) (sql.Result, error) {
	if s.hooks.exec != nil {
		return s.hooks.exec(s.db, query, args...)
	}
	return s.db.Exec(query, args...)
}

func (s *Store) queryHook(query string, args ...any) (*sql.Rows, error) {
	if s.hooks.query != nil {
		return s.hooks.query(s.db, query, args...)
	}
	return s.db.Query(query, args...)
}

// New creates a new Store with the given configuration.
// It creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = DefaultConfig().MaxHistory
	}
	if cfg.MaxSummaryLength <= 0 {
		cfg.MaxSummaryLength = DefaultConfig().MaxSummaryLength
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("workspace: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, DBFile)
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("workspace: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("workspace: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("workspace: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS workspaces (
			name       TEXT PRIMARY KEY,
			root       TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS edits (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			workspace  TEXT    NOT NULL,
			tool       TEXT    NOT NULL,
			target     TEXT    NOT NULL,
			summary    TEXT    NOT NULL,
			success    INTEGER NOT NULL DEFAULT 1,
			created_at TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_edits_workspace ON edits(workspace);
		CREATE INDEX IF NOT EXISTS idx_edits_target    ON edits(workspace, target);
		CREATE INDEX IF NOT EXISTS idx_edits_created   ON edits(created_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS edits_fts USING fts5(
			tool,
			target,
			summary,
			content='edits',
			content_rowid='id'
		);
	`
	if _, err := s.execHook(schema); err != nil {
		return err
	}

	// Create FTS triggers (idempotent)
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='edits_fts_insert'",
	).Scan(&name)

	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER edits_fts_insert AFTER INSERT ON edits BEGIN
				INSERT INTO edits_fts(rowid, tool, target, summary)
				VALUES (new.id, new.tool, new.target, new.summary);
			END;

			CREATE TRIGGER edits_fts_delete AFTER DELETE ON edits BEGIN
				INSERT INTO edits_fts(edits_fts, rowid, tool, target, summary)
				VALUES ('delete', old.id, old.tool, old.target, old.summary);
			END;
		`
		if _, err := s.execHook(triggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return nil
}
