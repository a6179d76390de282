// Package mysql implements a MySQL-backed storage.Repository using
// database/sql and github.com/go-sql-driver/mysql.
//
// MySQL commits DDL implicitly, so DROP and CREATE are not covered by the
// transaction; only the inserts are atomic.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	gddl "trackseed/internal/ddl"
	"trackseed/internal/logging"
)

// Config holds MySQL repository configuration.
type Config struct {
	DSN string // e.g. user:pass@tcp(localhost:3306)/music
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func() error, error) {
	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql dsn: %w", err)
	}
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &Repository{db: db, cfg: cfg}, db.Close, nil
}

// ReplaceTable implements storage.Repository.
func (r *Repository) ReplaceTable(ctx context.Context, def gddl.TableDef, rows [][]any) (int64, error) {
	create, err := buildCreateTableSQL(def)
	if err != nil {
		return 0, err
	}
	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteFQN(def.FQN)); err != nil {
		return 0, fmt.Errorf("mysql: drop table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("mysql: create table: %w", err)
	}
	logging.Debugf("mysql: recreated %s with %d columns", def.FQN, len(def.Columns))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mysql: begin tx: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	stmt, err := tx.PrepareContext(ctx, buildInsertSQL(def))
	if err != nil {
		return 0, fmt.Errorf("mysql: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for i, row := range rows {
		if len(row) != len(def.Columns) {
			return 0, fmt.Errorf("mysql: row %d: length %d != columns length %d", i, len(row), len(def.Columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("mysql: insert row %d: %w", i, err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("mysql: commit: %w", err)
	}
	return inserted, nil
}
