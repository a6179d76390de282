package sqlite

import (
	"context"
	"errors"
	"testing"

	"trackseed/internal/storage"
)

// TestSQLiteStorageRegistrationUsesNewRepositoryHook verifies that the
// "sqlite" storage backend registered in init() uses the newRepository hook
// and that wrappedRepo correctly delegates Close.
func TestSQLiteStorageRegistrationUsesNewRepositoryHook(t *testing.T) {
	ctx := context.Background()

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

	cfg := storage.Config{Kind: "sqlite", DSN: "app_data.db"}

	repo, err := storage.New(ctx, cfg)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
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

func TestSQLiteStorageRegistrationPropagatesOpenError(t *testing.T) {
	origNewRepository := newRepository
	defer func() { newRepository = origNewRepository }()

	boom := errors.New("boom")
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func() error, error) {
		return nil, nil, boom
	}

	if _, err := storage.New(context.Background(), storage.Config{Kind: "sqlite", DSN: "x.db"}); !errors.Is(err, boom) {
		t.Fatalf("storage.New() error = %v, want boom", err)
	}
}
