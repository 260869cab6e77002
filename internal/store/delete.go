package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/footballbetting/internal/schema"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// deleteRoot identifies the entity whose delete started the resolution. A
// blocked cascade is reported against it, not against the intermediate row.
type deleteRoot struct {
	table string
	key   string
}

// deleteWhere removes the rows of t selected by where. Restrict
// relationships are checked first; cascade relationships are then resolved
// depth first, so dependents go before the rows they reference. The nested
// selections reuse args in the same order, one copy of where per level.
func (b *Backend) deleteWhere(ctx context.Context, c conn, t *schema.Table, where string, args []any, root deleteRoot) error {
	restrict, cascade := b.schema.Classify(t.Name, b.policy)

	for _, fk := range restrict {
		var n int64
		q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s IN (SELECT id FROM %s WHERE %s)",
			fk.Table, fk.Column, t.Name, where)
		if err := c.queryRow(ctx, q, args...).Scan(&n); err != nil {
			return fmt.Errorf("checking %s.%s: %w", fk.Table, fk.Column, err)
		}
		if n > 0 {
			return integrityError(b.schema, fk, root)
		}
	}

	for _, fk := range cascade {
		child, _ := b.schema.Table(fk.Table)
		childWhere := fmt.Sprintf("%s IN (SELECT id FROM %s WHERE %s)", fk.Column, t.Name, where)
		b.logger.Debug("cascading delete",
			slog.String("from", t.Name),
			slog.String("to", fk.Table),
			slog.String("column", fk.Column),
		)
		if err := b.deleteWhere(ctx, c, child, childWhere, args, root); err != nil {
			return err
		}
	}

	if _, err := c.exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", t.Name, where), args...); err != nil {
		if c.d.classify(err) == constraintForeignKey {
			return fmt.Errorf("%s %s: %w: %v", root.table, root.key, types.ErrReferentialIntegrity, err)
		}
		return fmt.Errorf("deleting from %s: %w", t.Name, err)
	}
	return nil
}

func integrityError(s *schema.Schema, fk schema.ForeignKey, root deleteRoot) error {
	field := fk.Column
	if child, ok := s.Table(fk.Table); ok {
		if col, ok := child.Column(fk.Column); ok {
			field = col.Field
		}
	}
	return &types.ReferentialIntegrityError{
		Entity:    root.table,
		Key:       root.key,
		Dependent: fk.Table,
		Field:     field,
	}
}
