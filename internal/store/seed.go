package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/footballbetting/internal/schema"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// ReferencePositions are the playing positions created by SeedReference.
var ReferencePositions = []string{"Goalkeeper", "Defender", "Midfielder", "Forward"}

// SeedReference creates ReferencePositions when the positions table is
// empty and returns the number of rows inserted. A table that already holds
// any position is left untouched.
func (b *Backend) SeedReference(ctx context.Context) (int, error) {
	t := positionBinding.table
	inserted := 0
	err := b.withTx(ctx, func(c conn) error {
		found, err := exists(ctx, c, t.Name, "1 = 1")
		if err != nil || found {
			return err
		}
		for _, name := range ReferencePositions {
			rec := positionBinding.toRecord(&types.Position{Name: name})
			if err := schema.Validate(t, rec); err != nil {
				return err
			}
			if _, err := c.exec(ctx, fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", t.Name), name); err != nil {
				return translate(c.d, t, "", err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		b.logger.Info("reference data seeded", slog.String("table", t.Name), slog.Int("rows", inserted))
	}
	return inserted, nil
}
