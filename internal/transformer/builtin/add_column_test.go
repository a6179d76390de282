package builtin

import (
	"math"
	"reflect"
	"testing"

	"trackseed/internal/config"
	"trackseed/internal/table"
)

func TestAddColumn_AppendsConstant(t *testing.T) {
	t.Parallel()

	tbl := table.FromStrings([]string{"title"}, [][]string{{"a"}, {"b"}, {"c"}})
	if err := Liked().Apply(tbl); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[1] != (table.Column{Name: "liked", Kind: table.Integer}) {
		t.Fatalf("columns = %+v", tbl.Columns)
	}
	for i, row := range tbl.Rows {
		if len(row) != 2 || row[1] != int64(0) {
			t.Fatalf("row %d = %#v, want liked=0", i, row)
		}
	}
}

func TestAddColumn_OverwritesExisting(t *testing.T) {
	t.Parallel()

	tbl := table.FromStrings([]string{"liked", "title"}, [][]string{{"yes", "a"}, {"", "b"}})
	if err := Liked().Apply(tbl); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := tbl.ColumnNames(); !reflect.DeepEqual(got, []string{"liked", "title"}) {
		t.Fatalf("columns = %v", got)
	}
	if tbl.Columns[0].Kind != table.Integer {
		t.Fatalf("liked kind = %v, want int", tbl.Columns[0].Kind)
	}
	want := [][]any{{int64(0), "a"}, {int64(0), "b"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %#v, want %#v", tbl.Rows, want)
	}
}

func TestAddColumn_EmptyTable(t *testing.T) {
	t.Parallel()

	tbl := table.FromStrings([]string{"title"}, nil)
	if err := Liked().Apply(tbl); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if tbl.Len() != 0 || len(tbl.Columns) != 2 {
		t.Fatalf("table = %+v", tbl)
	}
}

func TestAddColumnFromOptions(t *testing.T) {
	t.Parallel()

	type tc struct {
		name    string
		opts    config.Options
		want    AddColumn
		wantErr bool
	}

	cases := []tc{
		{
			name: "defaults_to_int_zero",
			opts: config.Options{"name": "liked"},
			want: AddColumn{Name: "liked", Kind: table.Integer, Value: int64(0)},
		},
		{
			name: "json_number",
			opts: config.Options{"name": "liked", "type": "int", "value": float64(1)},
			want: AddColumn{Name: "liked", Kind: table.Integer, Value: int64(1)},
		},
		{
			name: "real",
			opts: config.Options{"name": "score", "type": "real", "value": 0.5},
			want: AddColumn{Name: "score", Kind: table.Real, Value: 0.5},
		},
		{
			name: "bool",
			opts: config.Options{"name": "seen", "type": "bool", "value": true},
			want: AddColumn{Name: "seen", Kind: table.Boolean, Value: true},
		},
		{
			name: "text_from_number",
			opts: config.Options{"name": "src", "type": "text", "value": float64(7)},
			want: AddColumn{Name: "src", Kind: table.Text, Value: "7"},
		},
		{name: "missing_name", opts: config.Options{}, wantErr: true},
		{name: "bad_type", opts: config.Options{"name": "x", "type": "blob"}, wantErr: true},
		{name: "fractional_int", opts: config.Options{"name": "x", "value": 1.5}, wantErr: true},
		{name: "int_above_range", opts: config.Options{"name": "x", "value": 9.3e18}, wantErr: true},
		{name: "int_at_two_pow_63", opts: config.Options{"name": "x", "value": float64(1 << 63)}, wantErr: true},
		{name: "int_below_range", opts: config.Options{"name": "x", "value": -9.3e18}, wantErr: true},
		{name: "int_infinite", opts: config.Options{"name": "x", "value": math.Inf(1)}, wantErr: true},
		{
			name: "int_min",
			opts: config.Options{"name": "x", "value": float64(math.MinInt64)},
			want: AddColumn{Name: "x", Kind: table.Integer, Value: int64(math.MinInt64)},
		},
		{name: "bool_from_string", opts: config.Options{"name": "x", "type": "bool", "value": "yes"}, wantErr: true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := AddColumnFromOptions(c.opts)
			if c.wantErr {
				if err == nil {
					t.Fatalf("AddColumnFromOptions() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddColumnFromOptions() error = %v", err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("AddColumnFromOptions() = %#v, want %#v", got, c.want)
			}
		})
	}
}
