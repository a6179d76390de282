package ddl

import (
	gddl "trackseed/internal/ddl"
	"trackseed/internal/table"
)

// FromTable derives a Postgres table definition named fqn (e.g.
// "public.tracks") from t.
func FromTable(fqn string, t *table.Table) gddl.TableDef {
	return gddl.FromTable(fqn, t, MapType)
}
