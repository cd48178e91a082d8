// Package postgres implements the repository ports on top of pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"taskmanager/internal/taskmanager/domain/entities"
)

// PgxPoolInterface is the subset of *pgxpool.Pool the repositories use.
// pgxmock pools satisfy it in tests.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// Postgres error codes and constraint names the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
	pgInvalidTextRepr     = "22P02"

	constraintUsersEmail          = "users_email_key"
	constraintUsersIdentifyNumber = "users_identify_number_key"
)

// translateError maps constraint violations onto domain errors. It returns
// nil when err is not a recognised Postgres error.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintUsersEmail:
			return entities.ErrEmailAlreadyExists
		case constraintUsersIdentifyNumber:
			return entities.ErrIdentifyNumberAlreadyExists
		default:
			return entities.ErrConflict
		}
	case pgForeignKeyViolation:
		return entities.ErrUserNotFound
	case pgCheckViolation:
		return entities.ErrValidation
	case pgStringTooLong:
		return entities.ErrValueTooLong
	}
	return nil
}

// isInvalidUUID reports whether err is Postgres rejecting a malformed uuid literal.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepr
}
