package repositories

import "errors"

// ErrNotFound is returned by point lookups when no row matches the key.
// Callers distinguish it from infrastructure failures with errors.Is; any
// other repository error means the store itself misbehaved.
var ErrNotFound = errors.New("record not found")
