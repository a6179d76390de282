package sqlite

import (
	"context"

	"trackseed/internal/storage"
	sqliteddl "trackseed/internal/storage/sqlite/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo adapts *sqlite.Repository to the storage.Repository interface,
// routing Close through the cleanup function returned by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func() error
}

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() error {
	if w.closeFn != nil {
		return w.closeFn()
	}
	return nil
}

// Ensure wrappedRepo satisfies the interface at compile time.
var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterTableDef("sqlite", sqliteddl.FromTable)
}
