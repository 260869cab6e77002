package schema

import (
	"fmt"
	"strings"
)

// Types maps column kinds to the SQL of one dialect.
type Types interface {
	// KeyColumn returns the definition suffix of a store-assigned key,
	// e.g. "INTEGER PRIMARY KEY AUTOINCREMENT".
	KeyColumn() string
	// ColumnType returns the SQL type of c, including any length bound the
	// dialect enforces natively.
	ColumnType(c Column) string
	// LengthCheck returns a CHECK expression bounding the length of col, or
	// "" when ColumnType already bounds it.
	LengthCheck(col string, maxLen int) string
}

// CreateTable returns an idempotent CREATE TABLE statement for t.
func CreateTable(t *Table, d Types) string {
	var lines []string
	for _, c := range t.Columns {
		if c.Kind == KindKey {
			lines = append(lines, fmt.Sprintf("    %s %s", c.Name, d.KeyColumn()))
			continue
		}
		def := fmt.Sprintf("    %s %s", c.Name, d.ColumnType(c))
		if c.Required {
			def += " NOT NULL"
		}
		if c.MaxLen > 0 {
			if chk := d.LengthCheck(c.Name, c.MaxLen); chk != "" {
				def += " CHECK (" + chk + ")"
			}
		}
		lines = append(lines, def)
	}
	if !t.Generated() {
		lines = append(lines, fmt.Sprintf("    PRIMARY KEY (%s)", strings.Join(t.Key, ", ")))
	}
	for _, fk := range t.ForeignKeys {
		def := fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s(id)", fk.Column, fk.Ref)
		// Default-policy relationships carry no ON DELETE clause; the
		// repository applies the configured policy.
		if fk.OnDelete == ActionRestrict {
			def += " ON DELETE RESTRICT"
		} else if fk.OnDelete == ActionCascade {
			def += " ON DELETE CASCADE"
		}
		lines = append(lines, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);", t.Name, strings.Join(lines, ",\n"))
}

// CreateIndexes returns idempotent CREATE INDEX statements for every foreign
// key column that does not lead the primary key.
func CreateIndexes(t *Table) []string {
	var out []string
	for _, fk := range t.ForeignKeys {
		if len(t.Key) > 0 && t.Key[0] == fk.Column {
			continue
		}
		out = append(out, fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s);", t.Name, fk.Column, t.Name, fk.Column))
	}
	return out
}

// DDL returns every statement needed to create s, tables first in dependency
// order, then indexes.
func (s *Schema) DDL(d Types) []string {
	var stmts, idx []string
	for _, t := range s.tables {
		stmts = append(stmts, CreateTable(t, d))
		idx = append(idx, CreateIndexes(t)...)
	}
	return append(stmts, idx...)
}
