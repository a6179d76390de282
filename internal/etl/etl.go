// Package etl runs the seeding job: load the input table, apply the transform
// chain, replace the destination table, close the destination and report.
//
// The input is read completely before the destination is opened, so a missing
// or malformed input never creates or modifies the database.
package etl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"trackseed/internal/config"
	"trackseed/internal/datasource"
	"trackseed/internal/logging"
	"trackseed/internal/metrics"
	"trackseed/internal/parser"
	"trackseed/internal/storage"
	"trackseed/internal/table"
	"trackseed/internal/transformer"
)

// Result summarizes a run.
type Result struct {
	// States lists every state entered, in order.
	States []State
	// Rows is the number of rows written.
	Rows int64
	// Columns are the destination column names, in order.
	Columns []string
	// Fingerprint is table.Fingerprint of the written table.
	Fingerprint uint64
}

// Final returns the last state entered.
func (r Result) Final() State {
	if len(r.States) == 0 {
		return Aborted
	}
	return r.States[len(r.States)-1]
}

// SuccessMessage is printed to stdout after a successful run.
func SuccessMessage(dsn, tbl string) string {
	return fmt.Sprintf("File %s created and populated successfully. It contains the table '%s'.", dsn, tbl)
}

// Run executes p once and writes the success message to stdout.
func Run(ctx context.Context, p config.Pipeline, stdout io.Writer) (res Result, err error) {
	enter := func(s State) {
		res.States = append(res.States, s)
		logging.Debugf("etl: state=%s", s)
	}
	defer func() {
		if err != nil {
			enter(Aborted)
		}
	}()

	// Setup failures carry the kind of the stage the component serves.
	src, err := datasource.New(p.Source)
	if err != nil {
		return res, stageErr(Loading, ErrFileNotFound, err)
	}
	rd, err := parser.New(p.Parser)
	if err != nil {
		return res, stageErr(Loading, ErrParse, err)
	}
	chain, err := transformer.FromConfig(p.Transform)
	if err != nil {
		return res, stageErr(Transforming, ErrTransform, err)
	}

	// Loading
	enter(Loading)
	start := time.Now()
	tbl, err := load(ctx, src, rd)
	metrics.RecordStep(p.Job, "load", err, time.Since(start))
	if err != nil {
		return res, err
	}
	metrics.RecordRow(p.Job, "loaded", int64(tbl.Len()))
	logging.Infof("etl: loaded %d rows x %d columns from %s", tbl.Len(), len(tbl.Columns), src)

	// Transforming
	enter(Transforming)
	start = time.Now()
	if err = chain.Apply(tbl); err != nil {
		err = stageErr(Transforming, ErrTransform, err)
	}
	metrics.RecordStep(p.Job, "transform", err, time.Since(start))
	if err != nil {
		return res, err
	}
	res.Columns = tbl.ColumnNames()
	res.Fingerprint = table.Fingerprint(tbl)
	logging.Debugf("etl: columns=%v fingerprint=%016x", res.Columns, res.Fingerprint)

	// Writing
	enter(Writing)
	start = time.Now()
	res.Rows, err = write(ctx, p.Storage, tbl)
	metrics.RecordStep(p.Job, "write", err, time.Since(start))
	if err != nil {
		return res, err
	}
	metrics.RecordRow(p.Job, "inserted", res.Rows)

	enter(Closed)
	metrics.RecordSuccess(p.Job, time.Now())
	fmt.Fprintln(stdout, SuccessMessage(p.Storage.DB.DSN, p.Storage.DB.Table))
	return res, nil
}

func load(ctx context.Context, src datasource.Source, rd parser.TableReader) (*table.Table, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Debugf("etl: input %s exists but cannot be opened: %v", src, err)
		}
		return nil, stageErr(Loading, ErrFileNotFound, err)
	}
	defer rc.Close()

	tbl, err := rd.ReadTable(rc)
	if err != nil {
		return nil, stageErr(Loading, ErrParse, fmt.Errorf("%s: %w", src, err))
	}
	return tbl, nil
}

// write opens the destination, replaces the table and closes the destination.
// A close failure after a successful write is logged only.
func write(ctx context.Context, cfg config.Storage, tbl *table.Table) (int64, error) {
	def, err := storage.TableDefFor(cfg.Kind, cfg.DB.Table, tbl)
	if err != nil {
		return 0, stageErr(Writing, ErrStorageWrite, err)
	}

	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Kind, DSN: cfg.DB.DSN})
	if err != nil {
		return 0, stageErr(Writing, ErrStorageWrite, err)
	}
	defer func() {
		if cerr := repo.Close(); cerr != nil {
			logging.Errorf("etl: close %s: %v", cfg.Kind, cerr)
		}
	}()

	n, err := repo.ReplaceTable(ctx, def, tbl.Rows)
	if err != nil {
		return 0, stageErr(Writing, ErrStorageWrite, err)
	}
	logging.Infof("etl: wrote %d rows to %s table %q", n, cfg.Kind, cfg.DB.Table)
	return n, nil
}
