package repositories

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a
	// uniqueness constraint. With concurrent registrations this is the
	// signal that actually serializes the race, the pre-insert lookup
	// in the service is only a fast path.
	ErrDuplicate = errors.New("duplicate record")
)
