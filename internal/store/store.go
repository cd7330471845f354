// Package store provides persistence backed by Postgres. All methods hang
// off a single Store holding the shared connection pool; multi-statement
// writes run inside a transaction so failures roll back completely.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ConflictError reports a violated uniqueness constraint. Services translate
// it into a domain conflict using the constraint identity, so the mapping
// stays store-agnostic.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unique constraint violated: %s", e.Constraint)
}

// asConflict converts a Postgres unique violation into a ConflictError,
// returning nil for any other error.
func asConflict(err error) *ConflictError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &ConflictError{Constraint: pgErr.ConstraintName}
	}
	return nil
}

// IsConflict reports whether err is a uniqueness violation on the given
// constraint. An empty constraint matches any conflict.
func IsConflict(err error, constraint string) bool {
	var ce *ConflictError
	if !errors.As(err, &ce) {
		return false
	}
	return constraint == "" || ce.Constraint == constraint
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
