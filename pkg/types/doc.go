// Package types defines the entity types, the Ledger and Table interfaces,
// configuration and the error taxonomy for the football betting ledger.
// Storage backends live in internal/store; callers reach them through
// pkg/store.NewBackend.
package types
