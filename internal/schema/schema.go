// Package schema declares the relational layout of the ledger: tables,
// columns, field constraints, foreign keys and their delete actions. The
// declaration is plain data; storage backends read it to generate DDL,
// validate records at the storage boundary and resolve referential actions
// on delete.
package schema

import (
	"fmt"
	"slices"
)

// Kind is the value domain of a column.
type Kind int

const (
	// KindKey is an integer surrogate key assigned by the store.
	KindKey Kind = iota
	// KindRef is an integer foreign key.
	KindRef
	KindInt
	KindBool
	KindText
	KindDecimal
	KindTime
)

// Check is an optional range constraint on numeric columns.
type Check int

const (
	CheckNone Check = iota
	CheckNonNegative
	CheckPositive
)

// Column describes one persisted field.
type Column struct {
	Name     string // column name, snake_case
	Field    string // entity field name used in validation errors
	Kind     Kind
	Required bool
	MaxLen   int  // maximum length in code points; 0 means unbounded
	ASCII    bool // restrict to single-byte ASCII content
	Check    Check
	Enum     []string // allowed values for text columns
}

// Action is a delete action on a foreign key.
type Action int

const (
	// ActionDefault defers to the configured Policy.
	ActionDefault Action = iota
	ActionRestrict
	ActionCascade
)

func (a Action) String() string {
	switch a {
	case ActionRestrict:
		return "restrict"
	case ActionCascade:
		return "cascade"
	default:
		return "default"
	}
}

// ForeignKey links Table.Column to the key of Ref.
type ForeignKey struct {
	Table    string // referencing (child) table
	Column   string
	Ref      string // referenced (parent) table
	OnDelete Action
}

// Table describes one entity table.
type Table struct {
	Name        string
	Key         []string // primary key columns
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns all column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Generated reports whether the table has a single store-assigned key.
func (t *Table) Generated() bool {
	if len(t.Key) != 1 {
		return false
	}
	c, ok := t.Column(t.Key[0])
	return ok && c.Kind == KindKey
}

// DataColumns returns the columns written on insert: every column except a
// store-assigned key.
func (t *Table) DataColumns() []Column {
	out := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Kind == KindKey {
			continue
		}
		out = append(out, c)
	}
	return out
}

// IsKey reports whether name is part of the primary key.
func (t *Table) IsKey(name string) bool {
	return slices.Contains(t.Key, name)
}

// ForeignKey returns the foreign key declared on column.
func (t *Table) ForeignKey(column string) (ForeignKey, bool) {
	for _, fk := range t.ForeignKeys {
		if fk.Column == column {
			return fk, true
		}
	}
	return ForeignKey{}, false
}

// Schema is an ordered set of tables. Order is dependency order: a table is
// declared after every table it references.
type Schema struct {
	tables []*Table
	byName map[string]*Table
}

// New builds a Schema and checks its internal consistency.
func New(tables ...*Table) (*Schema, error) {
	s := &Schema{byName: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if _, dup := s.byName[t.Name]; dup {
			return nil, fmt.Errorf("table %s declared twice", t.Name)
		}
		for _, k := range t.Key {
			if _, ok := t.Column(k); !ok {
				return nil, fmt.Errorf("table %s: key column %s not declared", t.Name, k)
			}
		}
		for i := range t.ForeignKeys {
			fk := &t.ForeignKeys[i]
			fk.Table = t.Name
			if _, ok := t.Column(fk.Column); !ok {
				return nil, fmt.Errorf("table %s: foreign key column %s not declared", t.Name, fk.Column)
			}
			parent, ok := s.byName[fk.Ref]
			if !ok {
				return nil, fmt.Errorf("table %s: %s references %s before it is declared", t.Name, fk.Column, fk.Ref)
			}
			if !parent.Generated() {
				return nil, fmt.Errorf("table %s: %s references %s which has no single surrogate key", t.Name, fk.Column, fk.Ref)
			}
		}
		s.tables = append(s.tables, t)
		s.byName[t.Name] = t
	}
	return s, nil
}

// MustNew is New that panics on an inconsistent declaration.
func MustNew(tables ...*Table) *Schema {
	s, err := New(tables...)
	if err != nil {
		panic(err)
	}
	return s
}

// Tables returns the tables in dependency order.
func (s *Schema) Tables() []*Table {
	return s.tables
}

// Table returns the table with the given name.
func (s *Schema) Table(name string) (*Table, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Incoming returns the foreign keys that reference the named table, in
// declaration order.
func (s *Schema) Incoming(name string) []ForeignKey {
	var out []ForeignKey
	for _, t := range s.tables {
		for _, fk := range t.ForeignKeys {
			if fk.Ref == name {
				out = append(out, fk)
			}
		}
	}
	return out
}
