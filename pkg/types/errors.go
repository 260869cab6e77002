package types

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrReference            = errors.New("foreign key does not resolve")
	ErrReferentialIntegrity = errors.New("delete blocked by dependent rows")
	ErrNotFound             = errors.New("entity not found")
	ErrDuplicateKey         = errors.New("duplicate key")
)

// Ledger lifecycle and table access errors.
var (
	ErrLedgerDetached  = errors.New("ledger is detached")
	ErrAlreadyAttached = errors.New("ledger is already attached")
	ErrTableNotFound   = errors.New("table not found")
	ErrInvalidKey      = errors.New("invalid entity key")
	ErrInvalidData     = errors.New("invalid entity data")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrStoreNotEmpty   = errors.New("store is not empty")
)

// ValidationError reports a field that is missing, too long, carries a
// disallowed encoding or is out of range.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ReferenceError reports a foreign key whose target row does not exist at
// write time.
type ReferenceError struct {
	Entity string
	Field  string
	Target string
	Key    int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s.%s: %s %d does not exist", e.Entity, e.Field, e.Target, e.Key)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// ReferentialIntegrityError reports a delete blocked by a dependent row under
// a restrict relationship. Dependent and Field name the referencing column.
type ReferentialIntegrityError struct {
	Entity    string
	Key       string
	Dependent string
	Field     string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: referenced by %s.%s", e.Entity, e.Key, e.Dependent, e.Field)
}

func (e *ReferentialIntegrityError) Is(target error) bool { return target == ErrReferentialIntegrity }

// NotFoundError reports a key that does not resolve.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Key, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateKeyError reports a primary key collision on create.
type DuplicateKeyError struct {
	Entity string
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Key, ErrDuplicateKey)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }
