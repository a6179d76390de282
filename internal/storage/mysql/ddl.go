package mysql

import (
	"fmt"
	"strings"

	gddl "trackseed/internal/ddl"
	"trackseed/internal/table"
)

// MapType maps a table.Kind onto a MySQL column type.
func MapType(kind table.Kind) string {
	switch kind {
	case table.Integer:
		return "BIGINT"
	case table.Real:
		return "DOUBLE"
	case table.Boolean:
		return "BOOLEAN"
	default:
		return "LONGTEXT"
	}
}

// FromTable derives a MySQL table definition named fqn from t.
func FromTable(fqn string, t *table.Table) gddl.TableDef {
	return gddl.FromTable(fqn, t, MapType)
}

// buildCreateTableSQL renders CREATE TABLE `db`.`table` (...).
func buildCreateTableSQL(t gddl.TableDef) (string, error) {
	fqn := quoteFQN(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("mysql ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("mysql ddl: at least one column is required")
	}
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.SQLType) == "" {
			return "", fmt.Errorf("mysql ddl: column %q in table %s needs a name and SQLType", c.Name, t.FQN)
		}
		cols = append(cols, quoteIdent(c.Name)+" "+c.SQLType)
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", fqn, strings.Join(cols, ",\n  ")), nil
}

func buildInsertSQL(t gddl.TableDef) string {
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quoteIdent(c.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteFQN(t.FQN), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// quoteIdent quotes a single identifier with backticks, doubling any embedded
// backtick.
func quoteIdent(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" }

func quoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, quoteIdent(p))
		}
	}
	return strings.Join(out, ".")
}
