// Package ddl provides MSSQL-specific helpers for generating DDL from the
// generic ddl.TableDef model.
//
// The builders here:
//   - Use SQL Server-style identifier quoting: [schema].[table], [col].
//   - Emit nullable columns only, with no constraints.
package ddl

import (
	"fmt"
	"strings"

	gddl "trackseed/internal/ddl"
)

// BuildCreateTableSQL returns a T-SQL CREATE TABLE statement for t. Callers
// replacing a table run BuildDropTableSQL first. The statement has the form:
//
//	CREATE TABLE [schema].[table] (
//	  [col1] TYPE,
//	  [col2] TYPE
//	);
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("mssql ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("mssql ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("mssql ddl: column with empty name in table %s", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("mssql ddl: column %s missing SQLType", name)
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

// BuildDropTableSQL returns DROP TABLE IF EXISTS for fqn (SQL Server 2016+).
func BuildDropTableSQL(fqn string) (string, error) {
	q := quoteFQN(fqn)
	if q == "" {
		return "", fmt.Errorf("mssql ddl: table FQN must not be empty")
	}
	return "DROP TABLE IF EXISTS " + q + ";", nil
}

// quoteIdent quotes a single identifier segment for SQL Server using
// bracket syntax, escaping any closing brackets.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

// quoteFQN quotes a possibly schema-qualified table name, e.g.:
//
//	"dbo.Users"   -> [dbo].[Users]
//	"Users"       -> [Users]
//	"a.b.c"       -> [a].[b].[c]
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
