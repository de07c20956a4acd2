package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"masar-backend/pkg/apperror"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
)

// translateErr maps low-level database errors onto the application error
// taxonomy. Missing tables and columns get their own class: they mean the
// deployed schema lags the service, which needs a migration, not a bug hunt.
func translateErr(err error, entity string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable, pgUndefinedColumn:
			return apperror.SchemaMismatch(
				fmt.Sprintf("database schema is out of date for %s (%s)", entity, pgErr.Message),
				err,
			)
		case pgUniqueViolation:
			return apperror.Conflict(fmt.Sprintf("%s already exists", entity))
		}
	}
	return apperror.Internal(err)
}
