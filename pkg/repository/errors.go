package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes translated by MapError.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

// Codes maps PostgreSQL SQLSTATE codes to domain errors.
type Codes map[string]error

// MapError translates database errors to domain errors.
// It maps sql.ErrNoRows to notFoundErr and any PostgreSQL error whose code
// appears in codes to the mapped error. Other errors are returned unchanged.
func MapError(err error, notFoundErr error, codes Codes) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := codes[pgErr.Code]; ok {
			return mapped
		}
	}

	return err
}
