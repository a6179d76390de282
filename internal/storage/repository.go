// Package storage contains the storage-agnostic sink contract and a small
// registry of backends. Concrete backends register a Factory under their
// kind from init(); import internal/storage/all to enable every built-in one.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"trackseed/internal/ddl"
)

// Repository is the sink the pipeline writes to.
type Repository interface {
	// ReplaceTable drops def.FQN if it exists, recreates it from def, and
	// inserts rows (aligned to def.Columns). It returns the number of rows
	// written. Backends perform the whole replacement in one transaction
	// where the database allows it.
	ReplaceTable(ctx context.Context, def ddl.TableDef, rows [][]any) (int64, error)

	// Close releases the underlying connection.
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "sqlite" or "postgres".
	Kind string
	// DSN is passed through to the backend driver.
	DSN string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the Factory for kind.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the Factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered backend kinds, sorted.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
