package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/footballbetting/internal/schema"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// constraint classifies an engine-reported constraint violation.
type constraint int

const (
	constraintNone constraint = iota
	constraintUnique
	constraintForeignKey
	constraintCheck
)

// dialect isolates the SQL differences between the supported engines.
type dialect interface {
	schema.Types
	name() string
	open(cfg types.Config) (*sql.DB, error)
	// rebind rewrites ? placeholders into the engine's syntax.
	rebind(query string) string
	// noLimit is the LIMIT operand that selects every remaining row.
	noLimit() string
	// classify maps a driver error to a constraint kind.
	classify(err error) constraint
	// afterImport realigns key generators with explicitly inserted keys.
	afterImport(ctx context.Context, c conn, t *schema.Table) error
}

func dialectFor(backend string) (dialect, error) {
	switch backend {
	case types.BackendSQLite:
		return sqliteDialect{}, nil
	case types.BackendPostgres:
		return postgresDialect{}, nil
	default:
		return nil, types.ErrBackendUnknown
	}
}

// sqliteDialect drives modernc.org/sqlite.
type sqliteDialect struct{}

func (sqliteDialect) name() string { return types.BackendSQLite }

// open builds the default DSN with foreign keys, WAL and a busy timeout
// applied to every pooled connection. A configured DSN is used verbatim.
func (sqliteDialect) open(cfg types.Config) (*sql.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = filepath.Clean(cfg.Target()) +
			"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"
	}
	return sql.Open("sqlite", dsn)
}

func (sqliteDialect) KeyColumn() string { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

func (sqliteDialect) ColumnType(c schema.Column) string {
	switch c.Kind {
	case schema.KindText, schema.KindDecimal, schema.KindTime:
		return "TEXT"
	default:
		return "INTEGER"
	}
}

func (sqliteDialect) LengthCheck(col string, maxLen int) string {
	return fmt.Sprintf("length(%s) <= %d", col, maxLen)
}

func (sqliteDialect) rebind(query string) string { return query }

func (sqliteDialect) noLimit() string { return "-1" }

func (sqliteDialect) classify(err error) constraint {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return constraintNone
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return constraintUnique
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return constraintForeignKey
	case sqlite3lib.SQLITE_CONSTRAINT_CHECK, sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
		return constraintCheck
	}
	return constraintNone
}

// afterImport is a no-op: AUTOINCREMENT continues from the largest key.
func (sqliteDialect) afterImport(context.Context, conn, *schema.Table) error { return nil }

// postgresDialect drives github.com/lib/pq.
type postgresDialect struct{}

func (postgresDialect) name() string { return types.BackendPostgres }

func (postgresDialect) open(cfg types.Config) (*sql.DB, error) {
	return sql.Open("postgres", cfg.DSN)
}

func (postgresDialect) KeyColumn() string { return "BIGSERIAL PRIMARY KEY" }

func (postgresDialect) ColumnType(c schema.Column) string {
	switch c.Kind {
	case schema.KindText:
		if c.MaxLen > 0 {
			return fmt.Sprintf("VARCHAR(%d)", c.MaxLen)
		}
		return "TEXT"
	case schema.KindDecimal:
		return "NUMERIC(19, 4)"
	case schema.KindTime:
		return "TIMESTAMPTZ"
	case schema.KindBool:
		return "BOOLEAN"
	default:
		return "BIGINT"
	}
}

// LengthCheck returns "": VARCHAR(n) bounds the length.
func (postgresDialect) LengthCheck(string, int) string { return "" }

func (postgresDialect) rebind(query string) string {
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (postgresDialect) noLimit() string { return "ALL" }

func (postgresDialect) classify(err error) constraint {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return constraintNone
	}
	switch pqErr.Code {
	case "23505":
		return constraintUnique
	case "23503":
		return constraintForeignKey
	case "23514", "23502", "22001":
		return constraintCheck
	}
	return constraintNone
}

func (postgresDialect) afterImport(ctx context.Context, c conn, t *schema.Table) error {
	if !t.Generated() {
		return nil
	}
	q := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
		t.Name, t.Name,
	)
	if _, err := c.exec(ctx, q); err != nil {
		return fmt.Errorf("resetting %s sequence: %w", t.Name, err)
	}
	return nil
}
