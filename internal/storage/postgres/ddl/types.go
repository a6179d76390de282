// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import "trackseed/internal/table"

// MapType maps a table.Kind onto a Postgres SQL type.
//
//	Integer -> BIGINT
//	Real    -> DOUBLE PRECISION
//	Boolean -> BOOLEAN
//	Text    -> TEXT
func MapType(kind table.Kind) string {
	switch kind {
	case table.Integer:
		return "BIGINT"
	case table.Real:
		return "DOUBLE PRECISION"
	case table.Boolean:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}
