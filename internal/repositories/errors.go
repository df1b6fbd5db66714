// Package repositories holds the Postgres persistence layer. Every repo maps
// a missing row to ErrNotFound so callers never inspect driver errors.
package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when the referenced row does not exist.
var ErrNotFound = errors.New("not found")

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
