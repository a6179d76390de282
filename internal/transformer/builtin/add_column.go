package builtin

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"trackseed/internal/config"
	"trackseed/internal/table"
)

// AddColumn sets column Name to Value on every row. A missing column is
// appended at the end; an existing one is overwritten in place and takes
// Kind, like assigning a scalar to a dataframe column.
type AddColumn struct {
	Name  string
	Kind  table.Kind
	Value any
}

// Liked is the default transform: an integer liked flag of 0 on every track.
func Liked() AddColumn {
	return AddColumn{Name: config.LikedColumn, Kind: table.Integer, Value: int64(0)}
}

func (a AddColumn) Apply(t *table.Table) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("add_column: empty column name")
	}
	idx := t.Index(a.Name)
	if idx < 0 {
		t.Columns = append(t.Columns, table.Column{Name: a.Name, Kind: a.Kind})
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], a.Value)
		}
		return nil
	}
	t.Columns[idx].Kind = a.Kind
	for _, row := range t.Rows {
		row[idx] = a.Value
	}
	return nil
}

// AddColumnFromOptions reads name, type and value from an add_column
// transform. type defaults to "int" and value to the zero value of type.
func AddColumnFromOptions(o config.Options) (AddColumn, error) {
	name := strings.TrimSpace(o.String("name", ""))
	if name == "" {
		return AddColumn{}, fmt.Errorf("add_column: options.name is required")
	}
	kind, err := table.ParseKind(o.String("type", "int"))
	if err != nil {
		return AddColumn{}, fmt.Errorf("add_column %s: %w", name, err)
	}
	v, err := constant(kind, o.Any("value"))
	if err != nil {
		return AddColumn{}, fmt.Errorf("add_column %s: %w", name, err)
	}
	return AddColumn{Name: name, Kind: kind, Value: v}, nil
}

// constant converts a JSON-decoded value to the Go type used for kind.
func constant(kind table.Kind, raw any) (any, error) {
	switch kind {
	case table.Integer:
		switch v := raw.(type) {
		case nil:
			return int64(0), nil
		case float64:
			// 1<<63 is exact as a float64; int64 holds [-2^63, 2^63).
			if v != math.Trunc(v) || v >= 1<<63 || v < -(1<<63) {
				return nil, fmt.Errorf("value %v is not an integer", v)
			}
			return int64(v), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("value %q is not an integer", v)
			}
			return n, nil
		}
	case table.Real:
		switch v := raw.(type) {
		case nil:
			return float64(0), nil
		case float64:
			return v, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("value %q is not a number", v)
			}
			return f, nil
		}
	case table.Boolean:
		switch v := raw.(type) {
		case nil:
			return false, nil
		case bool:
			return v, nil
		}
	default:
		switch v := raw.(type) {
		case nil:
			return "", nil
		case string:
			return v, nil
		default:
			return fmt.Sprint(v), nil
		}
	}
	return nil, fmt.Errorf("value %#v does not fit type %s", raw, kind)
}
