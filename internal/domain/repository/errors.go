package repository

import "errors"

// ErrNotFound is returned when no row matches a scoped lookup. Owner-scoped
// lookups return it both for missing rows and rows owned by someone else.
var ErrNotFound = errors.New("not found")

// ErrUnavailable wraps transient infrastructure failures (connection
// refused, pool exhausted, database not provisioned) so callers can offer a
// "try again later" answer instead of a generic failure.
var ErrUnavailable = errors.New("backing store unavailable")
