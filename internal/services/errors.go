package services

import "errors"

// ErrConflict is returned only when a caller asked for overlapping
// assignments to be rejected instead of reported.
var ErrConflict = errors.New("schedule conflict")

// ErrForbidden is returned when a store-scoped actor writes to another store.
var ErrForbidden = errors.New("not allowed outside your store")
