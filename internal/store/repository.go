package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/mesh-intelligence/footballbetting/internal/schema"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// Repository provides typed CRUD over one entity table. E is the entity
// struct and K its key: int64 for surrogate keys, types.PlayerStatisticKey
// for player statistics. Every call validates at the storage boundary and
// runs in its own transaction.
type Repository[E any, K comparable] struct {
	b    *Backend
	bind *binding[E, K]
}

func newRepository[E any, K comparable](b *Backend, bind *binding[E, K]) *Repository[E, K] {
	return &Repository[E, K]{b: b, bind: bind}
}

// Name returns the table name.
func (r *Repository[E, K]) Name() string { return r.bind.table.Name }

// Create validates e, resolves its references and inserts it. For surrogate
// keyed tables the assigned key is written back into e.
func (r *Repository[E, K]) Create(ctx context.Context, e *E) (K, error) {
	var key K
	t := r.bind.table
	if e == nil {
		return key, fmt.Errorf("%w: nil %s", types.ErrInvalidData, t.Name)
	}
	rec := r.bind.toRecord(e)
	if err := schema.Validate(t, rec); err != nil {
		return key, err
	}

	err := r.b.withTx(ctx, func(c conn) error {
		if err := checkReferences(ctx, c, t, rec); err != nil {
			return err
		}
		cols := t.DataColumns()
		names := make([]string, len(cols))
		args := make([]any, len(cols))
		for i, col := range cols {
			names[i] = col.Name
			args[i] = encodeValue(rec[col.Name])
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			t.Name, strings.Join(names, ", "), placeholders(len(cols)))

		if !t.Generated() {
			key = r.bind.keyOf(e)
			label := r.bind.formatKey(key)
			dup, err := exists(ctx, c, t.Name, keyWhere(t), r.bind.keyArgs(key)...)
			if err != nil {
				return err
			}
			if dup {
				return &types.DuplicateKeyError{Entity: t.Name, Key: label}
			}
			if _, err := c.exec(ctx, q, args...); err != nil {
				return translate(c.d, t, label, err)
			}
			return nil
		}

		var id int64
		if err := c.queryRow(ctx, q+" RETURNING id", args...).Scan(&id); err != nil {
			return translate(c.d, t, "", err)
		}
		key = r.bind.fromID(id)
		return nil
	})
	if err != nil {
		var zero K
		return zero, err
	}
	r.bind.setKey(e, key)
	return key, nil
}

// Read returns the entity stored under key.
func (r *Repository[E, K]) Read(ctx context.Context, key K) (*E, error) {
	t := r.bind.table
	c, release, err := r.b.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(t.ColumnNames(), ", "), t.Name, keyWhere(t))
	rec, err := scanRecord(t, c.queryRow(ctx, q, r.bind.keyArgs(key)...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &types.NotFoundError{Entity: t.Name, Key: r.bind.formatKey(key)}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s %s: %w", t.Name, r.bind.formatKey(key), err)
	}
	return r.bind.fromRecord(rec), nil
}

// Update replaces the stored entity under key with e. The key fields of e
// are overwritten with key.
func (r *Repository[E, K]) Update(ctx context.Context, key K, e *E) error {
	t := r.bind.table
	if e == nil {
		return fmt.Errorf("%w: nil %s", types.ErrInvalidData, t.Name)
	}
	r.bind.setKey(e, key)
	rec := r.bind.toRecord(e)
	if err := schema.Validate(t, rec); err != nil {
		return err
	}
	label := r.bind.formatKey(key)

	return r.b.withTx(ctx, func(c conn) error {
		found, err := exists(ctx, c, t.Name, keyWhere(t), r.bind.keyArgs(key)...)
		if err != nil {
			return err
		}
		if !found {
			return &types.NotFoundError{Entity: t.Name, Key: label}
		}
		if err := checkReferences(ctx, c, t, rec); err != nil {
			return err
		}
		var sets []string
		var args []any
		for _, col := range t.Columns {
			if t.IsKey(col.Name) {
				continue
			}
			sets = append(sets, col.Name+" = ?")
			args = append(args, encodeValue(rec[col.Name]))
		}
		args = append(args, r.bind.keyArgs(key)...)
		q := fmt.Sprintf("UPDATE %s SET %s WHERE %s", t.Name, strings.Join(sets, ", "), keyWhere(t))
		if _, err := c.exec(ctx, q, args...); err != nil {
			return translate(c.d, t, label, err)
		}
		return nil
	})
}

// Delete removes the entity under key after resolving the referential
// action of every relationship that points at it. Nothing is removed when
// any part of the resolution fails.
func (r *Repository[E, K]) Delete(ctx context.Context, key K) error {
	t := r.bind.table
	label := r.bind.formatKey(key)
	args := r.bind.keyArgs(key)

	return r.b.withTx(ctx, func(c conn) error {
		found, err := exists(ctx, c, t.Name, keyWhere(t), args...)
		if err != nil {
			return err
		}
		if !found {
			return &types.NotFoundError{Entity: t.Name, Key: label}
		}
		return r.b.deleteWhere(ctx, c, t, keyWhere(t), args, deleteRoot{table: t.Name, key: label})
	})
}

// List returns a lazy sequence over the entities matching filter, in key
// order. Each range re-runs the query, so the sequence can be consumed
// repeatedly and observes writes made between iterations. Errors are
// yielded with a nil entity and end the sequence.
func (r *Repository[E, K]) List(ctx context.Context, filter types.Filter) iter.Seq2[*E, error] {
	t := r.bind.table
	return func(yield func(*E, error) bool) {
		c, release, err := r.b.acquire()
		if err != nil {
			yield(nil, err)
			return
		}
		q, args, err := selectQuery(t, c.d, filter)
		if err != nil {
			release()
			yield(nil, err)
			return
		}
		rows, err := c.query(ctx, q, args...)
		release()
		if err != nil {
			yield(nil, fmt.Errorf("listing %s: %w", t.Name, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanRecord(t, rows)
			if err != nil {
				yield(nil, fmt.Errorf("listing %s: %w", t.Name, err))
				return
			}
			if !yield(r.bind.fromRecord(rec), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("listing %s: %w", t.Name, err))
		}
	}
}

// All drains List into a slice.
func (r *Repository[E, K]) All(ctx context.Context, filter types.Filter) ([]*E, error) {
	var out []*E
	for e, err := range r.List(ctx, filter) {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
