package ddl

import (
	"fmt"
	"strings"

	gddl "trackseed/internal/ddl"
)

// BuildCreateTableSQL renders a Postgres CREATE TABLE statement:
//
//	CREATE TABLE "schema"."table" (
//	  "col1" BIGINT,
//	  "col2" TEXT
//	);
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("postgres ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("postgres ddl: column with empty name in table %s", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("postgres ddl: column %s missing SQLType", name)
		}
		cols = append(cols, quoteIdent(name)+" "+typ)
	}

	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", quoteFQN(fqn), strings.Join(cols, ",\n  ")), nil
}

// BuildDropTableSQL returns DROP TABLE IF EXISTS for fqn.
func BuildDropTableSQL(fqn string) (string, error) {
	q := quoteFQN(fqn)
	if q == "" {
		return "", fmt.Errorf("postgres ddl: table FQN must not be empty")
	}
	return "DROP TABLE IF EXISTS " + q + ";", nil
}

// QuoteFQN quotes a possibly schema-qualified name like "public.tracks" to
// "public"."tracks".
func QuoteFQN(fqn string) string { return quoteFQN(fqn) }

// quoteIdent safely quotes a single identifier segment for Postgres.
func quoteIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

func quoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, quoteIdent(p))
		}
	}
	return strings.Join(out, ".")
}
