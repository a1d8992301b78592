// internal/cache/sqlite.go
//
// SQLite-backed cache Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from migrations/*.sql (idempotent, recorded in _migrations).
//   - Load/Save of named JSON payloads in cache_entries.
//
// Note: the DSN is a file path; ":memory:" is accepted for tests.

package cache

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps cache entries in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at dsn and migrates it.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load reads the payload stored under name and decodes it into v.
func (s *SQLiteStore) Load(name string, v any) (bool, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM cache_entries WHERE name=?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: query %s: %w", name, err)
	}
	if err := decode(name, payload, v); err != nil {
		return true, err
	}
	return true, nil
}

// Save upserts the payload for name.
func (s *SQLiteStore) Save(name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", name, err)
	}
	_, err = s.db.Exec(`
        INSERT INTO cache_entries (name, payload, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
		name, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("cache: save %s: %w", name, err)
	}
	return nil
}

// openDB opens a SQLite database file with busy timeout and WAL journaling.
// The parent directory is created for relative paths such as ./cache/solver.db.
func openDB(dsn string) (*sql.DB, error) {
	source := ":memory:"
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		source = dsn + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

// migrate applies the embedded migrations in lexical order, skipping those
// already recorded in _migrations. Each file runs in its own transaction.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrationsFS.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Debug().Str("migration", f).Msg("applied")
	}
	return nil
}
