// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql and the pure-Go modernc.org/sqlite driver. A table replacement
// runs as DROP + CREATE + prepared INSERTs inside one transaction, so a failed
// run leaves the previous table in place.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gddl "trackseed/internal/ddl"
	"trackseed/internal/logging"
	sqliteddl "trackseed/internal/storage/sqlite/ddl"

	_ "modernc.org/sqlite"
)

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// Open opens dsn with the sqlite driver, creating the parent directory of a
// plain file path if needed. The pool is capped at one connection: there is a
// single writer, and ":memory:" databases are per-connection.
func Open(dsn string) (*sql.DB, error) {
	if isFilePath(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: ensure data dir: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// New wraps an already-open *sql.DB.
func New(db *sql.DB) *Repository { return &Repository{db: db} }

// NewRepository opens a SQLite connection using cfg.DSN and returns a
// Repository plus a Close function for cleanup. The database file is created
// if it does not exist.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func() error, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	db, err := Open(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}

	// Fail fast on an unusable path (permissions, not a database, ...).
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Repository{db: db, cfg: cfg}, db.Close, nil
}

// ReplaceTable implements storage.Repository.
func (r *Repository) ReplaceTable(ctx context.Context, def gddl.TableDef, rows [][]any) (int64, error) {
	drop, err := sqliteddl.BuildDropTableSQL(def.FQN)
	if err != nil {
		return 0, err
	}
	create, err := sqliteddl.BuildCreateTableSQL(def)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	if _, err := tx.ExecContext(ctx, drop); err != nil {
		return 0, fmt.Errorf("sqlite: drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("sqlite: create table: %w", err)
	}
	logging.Debugf("sqlite: recreated %s with %d columns", def.FQN, len(def.Columns))

	stmt, err := tx.PrepareContext(ctx, sqliteddl.BuildInsertSQL(def))
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for i, row := range rows {
		if len(row) != len(def.Columns) {
			return 0, fmt.Errorf("sqlite: row %d: length %d != columns length %d", i, len(row), len(def.Columns))
		}
		if _, err := stmt.ExecContext(ctx, bindArgs(row)...); err != nil {
			return 0, fmt.Errorf("sqlite: insert row %d: %w", i, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

// bindArgs stores booleans as 0/1 to match the INTEGER affinity MapType uses.
func bindArgs(row []any) []any {
	args := make([]any, len(row))
	for i, v := range row {
		if b, ok := v.(bool); ok {
			if b {
				args[i] = int64(1)
			} else {
				args[i] = int64(0)
			}
			continue
		}
		args[i] = v
	}
	return args
}

// Exec executes an arbitrary SQL statement using the underlying connection.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// Count returns the number of rows in table fqn.
func (r *Repository) Count(ctx context.Context, fqn string) (int64, error) {
	var n int64
	q := "SELECT COUNT(*) FROM " + sqliteddl.QuoteFQN(fqn)
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count %s: %w", fqn, err)
	}
	return n, nil
}

// Close releases the underlying *sql.DB.
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
