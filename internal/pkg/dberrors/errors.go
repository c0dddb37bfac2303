// Package dberrors maps low-level PostgreSQL errors onto questions the
// repositories actually ask.
package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit
const uniqueViolation = "23505"

// IsDuplicateConstraintError reports whether err is a unique violation on the
// named constraint. Matching on the constraint name lets a repository with
// several unique columns translate each conflict to its own sentinel.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolation &&
		pgErr.ConstraintName == constraintName
}
