package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS properties (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	price REAL NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	bedrooms INTEGER NOT NULL DEFAULT 0,
	bathrooms INTEGER NOT NULL DEFAULT 0,
	area REAL NOT NULL DEFAULT 0,
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	features TEXT NOT NULL DEFAULT '[]',
	images TEXT NOT NULL DEFAULT '[]',
	is_featured INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS properties_created_at ON properties (created_at);

CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	qualification_responses TEXT NOT NULL DEFAULT '{}',
	notes TEXT NOT NULL DEFAULT '',
	property_id TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS leads_created_at ON leads (created_at);

CREATE TABLE IF NOT EXISTS site_settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	logo_url TEXT NOT NULL DEFAULT '',
	about_text TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	contact_phone TEXT NOT NULL DEFAULT '',
	hero_image_url TEXT NOT NULL DEFAULT '',
	about_image_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS calculations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	input TEXT NOT NULL,
	result TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// SQLiteStore keeps every record type in one SQLite database file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// applies the schema.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configuring sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Properties() *SQLitePropertyRepository {
	return &SQLitePropertyRepository{db: s.db}
}

func (s *SQLiteStore) Leads() *SQLiteLeadRepository {
	return &SQLiteLeadRepository{db: s.db}
}

func (s *SQLiteStore) Settings() *SQLiteSettingsRepository {
	return &SQLiteSettingsRepository{db: s.db}
}

func (s *SQLiteStore) Calculations() *SQLiteCalculationRepository {
	return &SQLiteCalculationRepository{db: s.db, now: s.now}
}

func countRows(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
