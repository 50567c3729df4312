package models

import "errors"

// ErrNotFound is returned by the stores when a single-row read or update
// matches no row.
var ErrNotFound = errors.New("not found")
