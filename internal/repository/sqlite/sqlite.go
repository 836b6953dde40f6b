// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// We use modernc.org/sqlite rather than mattn/go-sqlite3: it is a pure Go
// translation of the SQLite sources, so no CGo and no C toolchain, and
// cross-compilation stays painless. The blank import below registers the
// driver with database/sql under the name "sqlite".
//
// Schema creation is idempotent (CREATE TABLE IF NOT EXISTS) and safe to run
// on every open; existing data is never altered. Opening a fresh database
// also seeds the bootstrap administrator ("admin"/"admin", access level 2)
// when the users table is empty.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sakif/snippet-manager/internal/model"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-entity repositories (Users,
// Snippets, Languages, Stats) are lightweight views over this shared
// connection; DB itself only carries the schema, the bootstrap admin and
// the raw query escape hatch.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath, applies the schema and
// seeds the bootstrap admin if needed. Use ":memory:" in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// sql.Open only creates the pool; Ping forces a real connection so a
	// bad path or permission problem surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// SQLite permits a single writer, and every extra pool connection to a
	// ":memory:" path would open its own empty database. One connection
	// serves both cases.
	conn.SetMaxOpenConns(1)

	// WAL allows concurrent reads while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite; snippets.user_id relies on them.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	if err := db.bootstrapAdmin(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: seeding bootstrap admin: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			username     TEXT NOT NULL UNIQUE,
			password     TEXT,
			access_level INTEGER NOT NULL DEFAULT 1
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// Snippet columns besides user_id are nullable on purpose: the
	// full-overwrite edit path writes NULL for omitted fields.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS snippets (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			name            TEXT,
			language        TEXT,
			code            TEXT,
			example_code    TEXT,
			stdin           TEXT,
			expected_output TEXT,
			is_private      INTEGER,
			user_id         INTEGER NOT NULL REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_snippets_user_id ON snippets(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating snippets table: %w", err)
	}

	// supported_languages.id is the remote execution service's language id,
	// not an autoincrement; the catalog is replaced wholesale on sync.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS supported_languages (
			id   INTEGER NOT NULL UNIQUE,
			name TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating supported_languages table: %w", err)
	}

	return nil
}

// bootstrapAdmin inserts the default administrator the first time the users
// table is empty, so a fresh install always has a way in.
func (db *DB) bootstrapAdmin() error {
	var count int64
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := db.conn.Exec(
		`INSERT INTO users (username, password, access_level) VALUES (?, ?, ?)`,
		"admin", "admin", model.AccessLevelAdmin,
	)
	return err
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic. Panics are rethrown.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(tx)
	return err
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// The driver exposes this only through the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
