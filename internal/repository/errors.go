package repository

import "errors"

// ErrNotFound is returned when a lookup for a single entity (a profile) finds nothing.
// It hides the driver's own not-found value (sql.ErrNoRows, redis.Nil) from callers.
var ErrNotFound = errors.New("repository: not found")
