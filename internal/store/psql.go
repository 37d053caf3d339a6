package store

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation            = "23505"
	pgCheckViolation             = "23514"
	pgInvalidColumnRefOnConflict = "42P10"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// upsertRejected reports whether err is a constraint error on which an
// upsert should be retried as a plain insert.
func upsertRejected(err error) bool {
	code := pgErrorCode(err)
	return code == pgUniqueViolation || code == pgInvalidColumnRefOnConflict
}

// pgErrorCode returns the SQLSTATE of a postgres error. Other non-nil errors
// map to "unknown" and nil maps to "".
func pgErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "unknown"
	}
	return pgErr.Code
}
