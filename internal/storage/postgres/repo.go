// Package postgres implements a Postgres repository using pgx v5. A table
// replacement runs DROP + CREATE + COPY inside one transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	gddl "trackseed/internal/ddl"
	"trackseed/internal/logging"
	pgddl "trackseed/internal/storage/postgres/ddl"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN string // connection string for pgxpool
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func() error, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	closeFn := func() error { pool.Close(); return nil }
	return &Repository{pool: pool, cfg: cfg}, closeFn, nil
}

// ReplaceTable implements storage.Repository.
func (r *Repository) ReplaceTable(ctx context.Context, def gddl.TableDef, rows [][]any) (int64, error) {
	drop, err := pgddl.BuildDropTableSQL(def.FQN)
	if err != nil {
		return 0, err
	}
	create, err := pgddl.BuildCreateTableSQL(def)
	if err != nil {
		return 0, err
	}
	cols := def.ColumnNames()
	for i, row := range rows {
		if len(row) != len(cols) {
			return 0, fmt.Errorf("postgres: row %d: length %d != columns length %d", i, len(row), len(cols))
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after Commit

	if _, err := tx.Exec(ctx, drop); err != nil {
		return 0, fmt.Errorf("postgres: drop table: %w", err)
	}
	if _, err := tx.Exec(ctx, create); err != nil {
		return 0, fmt.Errorf("postgres: create table: %w", err)
	}
	logging.Debugf("postgres: recreated %s with %d columns", def.FQN, len(cols))

	n, err := tx.CopyFrom(ctx, splitFQN(def.FQN), cols, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return 0, fmt.Errorf("postgres: copy into %s: %s (%s)", def.FQN, pgErr.Detail, pgErr.SQLState())
		}
		return 0, fmt.Errorf("postgres: copy into %s: %w", def.FQN, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return n, nil
}

// splitFQN converts "schema.table" into a pgx.Identifier {"schema","table"}.
// If no dot is present, returns {"table"}.
func splitFQN(fqn string) pgx.Identifier {
	parts := strings.Split(fqn, ".")
	id := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			id = append(id, p)
		}
	}
	return id
}

// Exec runs an arbitrary statement on the pool.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	_, err := r.pool.Exec(ctx, sql)
	return err
}

// Count returns the number of rows in table fqn.
func (r *Repository) Count(ctx context.Context, fqn string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgddl.QuoteFQN(fqn)).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count %s: %w", fqn, err)
	}
	return n, nil
}
