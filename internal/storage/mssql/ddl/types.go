// Package ddl contains MSSQL-specific helpers for generating DDL.
package ddl

import "trackseed/internal/table"

// MapType maps a table.Kind onto a SQL Server column type. Text uses the
// flexible Unicode string type.
func MapType(kind table.Kind) string {
	switch kind {
	case table.Integer:
		return "BIGINT"
	case table.Real:
		return "FLOAT"
	case table.Boolean:
		return "BIT"
	default:
		return "NVARCHAR(MAX)"
	}
}
