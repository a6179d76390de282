package ddl

import (
	gddl "trackseed/internal/ddl"
	"trackseed/internal/table"
)

// FromTable derives a SQL Server table definition named fqn (e.g.
// "dbo.tracks") from t.
func FromTable(fqn string, t *table.Table) gddl.TableDef {
	return gddl.FromTable(fqn, t, MapType)
}
