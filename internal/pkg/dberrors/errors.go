package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // pgconn for PgError; the gorm postgres driver is pgx-backed
	"gorm.io/gorm"
)

// IsUniqueViolation checks if the error is a unique-constraint violation,
// regardless of which constraint was hit. gorm's TranslateError mode reports
// gorm.ErrDuplicatedKey across drivers; the PgError check covers paths that
// bypass translation.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique
// violation for a specific named constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
}

// IsForeignKeyViolation checks if the error is a referential-integrity
// violation (PostgreSQL 23503).
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// IsNotFound checks if the error is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
