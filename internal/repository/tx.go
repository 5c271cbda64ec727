package repository

// tx.go — shared transaction helpers: row locking and PostgreSQL error
// classification (pgconn error codes via the pgx driver behind GORM).

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm/clause"
)

func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// IsUniqueViolation reports whether err is a PostgreSQL 23505 unique-index
// violation, optionally narrowed to a constraint name substring.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || strings.Contains(pgErr.ConstraintName, constraint)
}

// IsSerializationFailure reports whether err is a PostgreSQL 40001
// serialization failure or a 40P01 deadlock — both retryable conflicts.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
