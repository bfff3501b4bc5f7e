package store

import "errors"

var (
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("already exists")

	// ErrNotFound is returned by updates and deletes that match no row.
	ErrNotFound = errors.New("not found")
)
