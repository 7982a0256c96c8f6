// Package store holds the persistence error contract shared by the database
// adapters and the services that consume them.
package store

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("store: unique constraint violation")
	// ErrReference is returned when a write points at a row that does not
	// exist.
	ErrReference = errors.New("store: foreign key violation")
	// ErrStale is returned when a conditional update matched no row because
	// the row changed since it was read.
	ErrStale = errors.New("store: row changed concurrently")
)
