// Package ddl contains SQLite-specific helpers for generating DDL.
//
// It maps table kinds onto SQLite column types. SQLite is dynamically typed,
// so the mapping only picks the column affinity:
//   - Integer -> INTEGER
//   - Boolean -> INTEGER (0/1)
//   - Real    -> REAL
//   - Text    -> TEXT
package ddl

import "trackseed/internal/table"

// MapType maps a table.Kind onto a SQLite column type.
func MapType(kind table.Kind) string {
	switch kind {
	case table.Integer, table.Boolean:
		return "INTEGER"
	case table.Real:
		return "REAL"
	default:
		return "TEXT"
	}
}
