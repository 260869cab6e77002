// Package store exposes the ledger backend factory while keeping the
// implementation internal.
package store

import (
	"log/slog"

	"github.com/mesh-intelligence/footballbetting/internal/store"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// Backend is the concrete ledger: types.Ledger plus typed repositories,
// export, import and seeding.
type Backend = store.Backend

// NewBackend creates a detached ledger backend. A nil logger discards
// backend logs.
//
// Example:
//
//	b := store.NewBackend(nil)
//	err := b.Attach(ctx, types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "data",
//	})
//	defer b.Detach()
func NewBackend(logger *slog.Logger) *Backend {
	return store.NewBackend(store.WithLogger(logger))
}

var _ types.Ledger = (*Backend)(nil)
