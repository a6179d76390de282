package mssql

import (
	"context"
	"testing"

	"trackseed/internal/storage"
	"trackseed/internal/table"
)

// TestMSSQLStorageRegistrationUsesNewRepositoryHook verifies that the "mssql"
// storage backend registered in init() uses the newRepository hook and that
// the wrappedRepo correctly propagates configuration and close behavior.
func TestMSSQLStorageRegistrationUsesNewRepositoryHook(t *testing.T) {
	ctx := context.Background()

	// Save and restore global hook.
	origNewRepository := newRepository
	defer func() { newRepository = origNewRepository }()

	var (
		called   bool
		gotCfg   Config
		closed   bool
		fakeRepo = &Repository{}
	)

	newRepository = func(ctx context.Context, cfg Config) (*Repository, func() error, error) {
		called = true
		gotCfg = cfg
		return fakeRepo, func() error { closed = true; return nil }, nil
	}

	cfg := storage.Config{Kind: "mssql", DSN: "sqlserver://example"}

	repo, err := storage.New(ctx, cfg)
	if err != nil {
		t.Fatalf("storage.New() error = %v, want nil", err)
	}
	if !called {
		t.Fatalf("newRepository hook was not called")
	}
	if gotCfg.DSN != cfg.DSN {
		t.Errorf("hook cfg.DSN = %q, want %q", gotCfg.DSN, cfg.DSN)
	}

	w, ok := repo.(*wrappedRepo)
	if !ok {
		t.Fatalf("storage.New() type = %T, want *wrappedRepo", repo)
	}
	if w.Repository != fakeRepo {
		t.Fatalf("wrappedRepo.Repository = %p, want %p", w.Repository, fakeRepo)
	}

	if err := repo.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !closed {
		t.Fatalf("wrappedRepo.Close() did not invoke closeFn")
	}
}

func TestMSSQLTableDefRegistered(t *testing.T) {
	t.Parallel()

	tbl := &table.Table{Columns: []table.Column{{Name: "liked", Kind: table.Integer}}}
	def, err := storage.TableDefFor("mssql", "dbo.tracks", tbl)
	if err != nil {
		t.Fatalf("TableDefFor error: %v", err)
	}
	if def.Columns[0].SQLType != "BIGINT" {
		t.Fatalf("liked SQLType = %q, want BIGINT", def.Columns[0].SQLType)
	}
}

func TestNewRepository_BadDSN(t *testing.T) {
	t.Parallel()

	if _, _, err := NewRepository(context.Background(), Config{DSN: "sqlserver://%zz"}); err == nil {
		t.Fatalf("NewRepository(bad dsn) error = nil, want non-nil")
	}
}

func TestMSFQN(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"tracks":     "[tracks]",
		"dbo.tracks": "[dbo].[tracks]",
		"we]ird":     "[we]]ird]",
	}
	for in, want := range cases {
		if got := msFQN(in); got != want {
			t.Errorf("msFQN(%q) = %q, want %q", in, got, want)
		}
	}
}
