package registry

import "errors"

// Domain errors for registry operations.
var (
	// ErrNotFound is returned when no entry exists under a name.
	ErrNotFound = errors.New("entry not found")

	// ErrExists is returned when an entry already exists under a name.
	ErrExists = errors.New("entry already exists")

	// ErrInvalidName is returned when a name is empty or contains whitespace.
	ErrInvalidName = errors.New("invalid name")
)
