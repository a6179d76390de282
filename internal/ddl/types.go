// Package ddl defines a small, backend-agnostic model for the destination
// table. Backend packages (internal/storage/sqlite/ddl,
// internal/storage/postgres/ddl) render it in their own dialect.
package ddl

import "trackseed/internal/table"

// ColumnDef describes a single column in a table definition. Columns are
// always nullable; the destination carries no keys or defaults.
//
// Fields:
//   - Name: logical column name (unquoted; quoting/escaping happens at render time)
//   - SQLType: target SQL type (e.g., TEXT, BIGINT)
type ColumnDef struct {
	Name    string
	SQLType string
}

// TableDef holds the table name (FQN) and an ordered list of columns. The FQN
// may be dotted ("schema.table"); renderers quote each segment.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// ColumnNames returns the column names in order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// FromTable derives a TableDef named fqn from an in-memory table, mapping each
// column kind through mapType. The destination mirrors the table and adds no
// index column.
func FromTable(fqn string, t *table.Table, mapType func(table.Kind) string) TableDef {
	cols := make([]ColumnDef, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = ColumnDef{Name: c.Name, SQLType: mapType(c.Kind)}
	}
	return TableDef{FQN: fqn, Columns: cols}
}
