package ddl

import (
	"fmt"
	"strings"

	gddl "trackseed/internal/ddl"
)

// BuildCreateTableSQL returns a SQLite CREATE TABLE statement for the given
// table definition. Callers replacing a table run BuildDropTableSQL first, so
// no IF NOT EXISTS is emitted. The statement has the form:
//
//	CREATE TABLE "table" (
//	  "col1" TYPE,
//	  "col2" TYPE
//	);
//
// TableDef.FQN is interpreted as a table name; if it contains dots (e.g.,
// "main.events"), each segment is individually quoted.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("sqlite ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("sqlite ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("sqlite ddl: column with empty name in table %s", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("sqlite ddl: column %s missing SQLType", name)
		}
		cols = append(cols, quoteIdent(name)+" "+typ)
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE %s (\n  %s\n);",
		quoteFQN(fqn),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}

// BuildDropTableSQL returns DROP TABLE IF EXISTS for fqn.
func BuildDropTableSQL(fqn string) (string, error) {
	q := quoteFQN(strings.TrimSpace(fqn))
	if q == "" {
		return "", fmt.Errorf("sqlite ddl: table FQN must not be empty")
	}
	return "DROP TABLE IF EXISTS " + q + ";", nil
}

// BuildInsertSQL returns a positional INSERT for every column of t.
func BuildInsertSQL(t gddl.TableDef) string {
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quoteIdent(c.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteFQN(t.FQN), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// QuoteFQN quotes each dotted segment of a table name.
func QuoteFQN(fqn string) string { return quoteFQN(fqn) }

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func quoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quoteIdent(p))
	}
	return strings.Join(out, ".")
}
