package ddl

import (
	"reflect"
	"testing"

	"trackseed/internal/table"
)

func TestFromTable(t *testing.T) {
	t.Parallel()

	tbl := &table.Table{Columns: []table.Column{
		{Name: "title", Kind: table.Text},
		{Name: "tempo", Kind: table.Integer},
		{Name: "liked", Kind: table.Integer},
	}}
	mapType := func(k table.Kind) string { return "T_" + k.String() }

	got := FromTable("tracks", tbl, mapType)

	want := TableDef{FQN: "tracks", Columns: []ColumnDef{
		{Name: "title", SQLType: "T_text"},
		{Name: "tempo", SQLType: "T_int"},
		{Name: "liked", SQLType: "T_int"},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FromTable() = %+v, want %+v", got, want)
	}
	if names := got.ColumnNames(); !reflect.DeepEqual(names, []string{"title", "tempo", "liked"}) {
		t.Fatalf("ColumnNames() = %v", names)
	}
}
