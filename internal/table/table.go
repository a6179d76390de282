// Package table holds the in-memory tabular structure that flows from the CSV
// loader through the transform chain into a storage backend.
//
// A Table is column-ordered: Columns defines the schema and every row in Rows
// carries exactly len(Columns) cells in the same order. Cells are nil (missing
// value), int64, float64, bool, or string.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the logical type of a column.
type Kind int

const (
	Text Kind = iota
	Integer
	Real
	Boolean
)

// String returns the lowercase logical name used in configs and logs.
func (k Kind) String() string {
	switch k {
	case Integer:
		return "int"
	case Real:
		return "real"
	case Boolean:
		return "bool"
	default:
		return "text"
	}
}

// ParseKind maps a config type name onto a Kind. Unknown names are an error.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "string":
		return Text, nil
	case "int", "integer", "bigint":
		return Integer, nil
	case "real", "float", "double":
		return Real, nil
	case "bool", "boolean":
		return Boolean, nil
	default:
		return Text, fmt.Errorf("table: unknown column type %q", s)
	}
}

// Column describes one column of a Table.
type Column struct {
	Name string
	Kind Kind
}

// Table is an ordered set of columns and the rows that populate them.
type Table struct {
	Columns []Column
	Rows    [][]any
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Index returns the position of the named column or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// missing lists the cell spellings treated as a missing value on load.
var missing = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw CSV cell denotes a missing value.
func IsMissing(s string) bool {
	_, ok := missing[s]
	return ok
}

// FromStrings builds a Table from a header and raw string records, inferring
// one Kind per column and converting every cell to it.
//
// Inference mirrors a dataframe reader: a column whose present values all
// parse as integers is Integer, unless it also has missing values, in which
// case it widens to Real. Otherwise all-float columns are Real, all
// true/false columns are Boolean, and anything else is Text.
func FromStrings(header []string, records [][]string) *Table {
	t := &Table{
		Columns: make([]Column, len(header)),
		Rows:    make([][]any, len(records)),
	}
	for i, name := range header {
		t.Columns[i] = Column{Name: name, Kind: inferKind(records, i)}
	}
	for r, rec := range records {
		row := make([]any, len(header))
		for i := range header {
			row[i] = convert(rec[i], t.Columns[i].Kind)
		}
		t.Rows[r] = row
	}
	return t
}

func inferKind(records [][]string, col int) Kind {
	var (
		present, hasMissing    bool
		allInt, allReal, allTF = true, true, true
	)
	for _, rec := range records {
		s := rec[col]
		if IsMissing(s) {
			hasMissing = true
			continue
		}
		present = true
		if allInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				allInt = false
			}
		}
		if allReal && !allInt {
			if _, err := parseReal(s); err != nil {
				allReal = false
			}
		}
		if allTF {
			if _, ok := parseBool(s); !ok {
				allTF = false
			}
		}
	}
	switch {
	case !present:
		return Text
	case allInt && hasMissing:
		return Real
	case allInt:
		return Integer
	case allReal:
		return Real
	case allTF:
		return Boolean
	default:
		return Text
	}
}

func convert(s string, k Kind) any {
	if IsMissing(s) {
		return nil
	}
	switch k {
	case Integer:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case Real:
		if f, err := parseReal(s); err == nil {
			return f
		}
	case Boolean:
		if b, ok := parseBool(s); ok {
			return b
		}
	}
	return s
}

// parseReal accepts decimal floats only; hex floats, "inf" and "nan" spellings stay text.
func parseReal(s string) (float64, error) {
	for _, c := range s {
		if (c < '0' || c > '9') && !strings.ContainsRune(".+-eE", c) {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseFloat(s, 64)
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}
