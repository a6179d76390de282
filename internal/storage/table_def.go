package storage

import (
	"fmt"
	"sync"

	"trackseed/internal/ddl"
	"trackseed/internal/table"
)

// TableDefFunc derives a backend-specific table definition (SQL types in the
// backend's dialect) named fqn from an in-memory table.
//
// Backends register their implementation for a given storage kind at init
// time, next to their Factory.
type TableDefFunc func(fqn string, t *table.Table) ddl.TableDef

var (
	defMu  sync.RWMutex
	defFns = map[string]TableDefFunc{}
)

// RegisterTableDef registers (or replaces) the TableDefFunc for kind.
func RegisterTableDef(kind string, fn TableDefFunc) {
	defMu.Lock()
	defer defMu.Unlock()
	defFns[kind] = fn
}

// TableDefFor derives the destination table definition for storage kind. The
// caller does not need to know which backend it is writing to.
func TableDefFor(kind, fqn string, t *table.Table) (ddl.TableDef, error) {
	defMu.RLock()
	fn, ok := defFns[kind]
	defMu.RUnlock()
	if !ok {
		return ddl.TableDef{}, fmt.Errorf("no table definition registered for storage.kind=%q", kind)
	}
	return fn(fqn, t), nil
}
