package ddl

import (
	gddl "trackseed/internal/ddl"
	"trackseed/internal/table"
)

// FromTable derives a SQLite-oriented TableDef named fqn from t.
func FromTable(fqn string, t *table.Table) gddl.TableDef {
	return gddl.FromTable(fqn, t, MapType)
}
