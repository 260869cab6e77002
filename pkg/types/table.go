package types

import "context"

// Filter selects rows by column equality. Keys are column names as declared
// in the schema (for example "team_id"). The reserved keys "limit" and
// "offset" page the result. A nil or empty filter matches every row.
type Filter map[string]any

// Reserved filter keys.
const (
	FilterLimit  = "limit"
	FilterOffset = "offset"
)

// Table provides uniform CRUD operations for a single entity type over
// untyped values. Get and Fetch return pointers to the entity struct
// (*Team, *Bet, ...); callers type-assert. Keys are rendered as strings:
// the decimal surrogate key, or "<gameID>:<playerID>" for player statistics.
type Table interface {
	// Name returns the table name.
	Name() string

	// Get retrieves the entity with the given key.
	// Returns a *NotFoundError if no entity exists with that key.
	Get(ctx context.Context, key string) (any, error)

	// Set creates the entity when key is empty and updates it otherwise.
	// Returns the key of the stored entity.
	Set(ctx context.Context, key string, data any) (string, error)

	// Delete removes the entity with the given key, applying the
	// configured referential actions to its dependents.
	Delete(ctx context.Context, key string) error

	// Fetch returns all entities matching the filter.
	Fetch(ctx context.Context, filter Filter) ([]any, error)
}

// Ledger is the storage handle. Callers attach to a backend, access tables
// by name, and detach when done.
type Ledger interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Ledger to the store described by config and
	// creates the schema if it does not exist yet.
	// Returns ErrAlreadyAttached if called while attached.
	Attach(ctx context.Context, config Config) error

	// Detach releases backend resources. Idempotent.
	// After Detach, table operations return ErrLedgerDetached.
	Detach() error
}
