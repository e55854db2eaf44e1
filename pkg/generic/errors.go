package generic

import "errors"

var (
	// ErrNotFound is returned when no document matches an id or filter.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
	// ErrInvalidID is returned for ids that are not valid ObjectID hex strings.
	ErrInvalidID = errors.New("invalid id")
)
