package pgdb

import (
	"errors"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"
	outOfRangeCode      = "22003"
)

// postgresDuplicate сообщает, что запрос нарушил уникальный индекс.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// mapError переводит ошибки pgx в доменные: нет строки -> e.ErrNotFound,
// нарушение уникальности -> e.ErrConflict, нарушение CHECK и выход числа
// за пределы типа колонки -> e.ErrInvalidArgument.
func mapError(where string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return e.Wrap(where, e.ErrNotFound)
	case postgresDuplicate(err):
		return e.Wrap(where, e.ErrConflict)
	case errors.As(err, &pgErr) && (pgErr.Code == checkViolationCode || pgErr.Code == outOfRangeCode):
		return e.Wrap(where, e.ErrInvalidArgument)
	default:
		return e.Wrap(where, err)
	}
}
