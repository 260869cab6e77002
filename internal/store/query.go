package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/footballbetting/internal/schema"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn pairs a querier with its dialect and rebinds every statement.
type conn struct {
	q querier
	d dialect
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.q.ExecContext(ctx, c.d.rebind(query), args...)
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.q.QueryContext(ctx, c.d.rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.q.QueryRowContext(ctx, c.d.rebind(query), args...)
}

// keyWhere returns "k1 = ? AND k2 = ?" over the primary key of t.
func keyWhere(t *schema.Table) string {
	parts := make([]string, len(t.Key))
	for i, k := range t.Key {
		parts[i] = k + " = ?"
	}
	return strings.Join(parts, " AND ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// exists reports whether a row of table matches where.
func exists(ctx context.Context, c conn, table, where string, args ...any) (bool, error) {
	var one int
	err := c.queryRow(ctx, fmt.Sprintf("SELECT 1 FROM %s WHERE %s", table, where), args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("querying %s: %w", table, err)
	}
	return true, nil
}

// selectQuery builds a SELECT over every column of t restricted by filter.
// Filter keys are column names; "limit" and "offset" page the result. Rows
// come back in primary key order.
func selectQuery(t *schema.Table, d dialect, filter types.Filter) (string, []any, error) {
	var (
		conds []string
		args  []any
		page  []any
		limit string
	)
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var hasLimit, hasOffset bool
	var lim, off int64
	for _, k := range keys {
		v := filter[k]
		switch k {
		case types.FilterLimit, types.FilterOffset:
			n, ok := toInt64(v)
			if !ok || n < 0 {
				return "", nil, fmt.Errorf("%w: %s must be a non-negative integer", types.ErrInvalidFilter, k)
			}
			if k == types.FilterLimit {
				hasLimit, lim = true, n
			} else {
				hasOffset, off = true, n
			}
			continue
		}
		c, ok := t.Column(k)
		if !ok {
			return "", nil, fmt.Errorf("%w: %s has no column %q", types.ErrInvalidFilter, t.Name, k)
		}
		val, err := coerce(c, v)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", types.ErrInvalidFilter, err)
		}
		conds = append(conds, k+" = ?")
		args = append(args, encodeValue(val))
	}

	switch {
	case hasLimit:
		limit = " LIMIT ?"
		page = append(page, lim)
	case hasOffset:
		limit = " LIMIT " + d.noLimit()
	}
	if hasOffset {
		limit += " OFFSET ?"
		page = append(page, off)
	}

	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.ColumnNames(), ", "), t.Name)
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY " + strings.Join(t.Key, ", ") + limit
	return q, append(args, page...), nil
}

// checkReferences resolves every foreign key of rec against its parent table.
func checkReferences(ctx context.Context, c conn, t *schema.Table, rec schema.Record) error {
	for _, fk := range t.ForeignKeys {
		id, _ := rec[fk.Column].(int64)
		ok, err := exists(ctx, c, fk.Ref, "id = ?", id)
		if err != nil {
			return err
		}
		if !ok {
			col, _ := t.Column(fk.Column)
			return &types.ReferenceError{Entity: t.Name, Field: col.Field, Target: fk.Ref, Key: id}
		}
	}
	return nil
}

// translate maps engine constraint violations that slipped past the
// pre-checks (concurrent writers) onto the error taxonomy.
func translate(d dialect, t *schema.Table, key string, err error) error {
	switch d.classify(err) {
	case constraintUnique:
		return &types.DuplicateKeyError{Entity: t.Name, Key: key}
	case constraintForeignKey:
		return fmt.Errorf("%s %s: %w: %v", t.Name, key, types.ErrReference, err)
	case constraintCheck:
		return fmt.Errorf("%s %s: %w: %v", t.Name, key, types.ErrValidation, err)
	}
	return fmt.Errorf("writing %s: %w", t.Name, err)
}
