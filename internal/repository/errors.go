package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound signals that no record matched the given primary key.
	ErrNotFound = errors.New("repository: record not found")
	// ErrConflict signals a uniqueness violation on insert or update.
	ErrConflict = errors.New("repository: duplicate key")
)

const uniqueViolationCode = "23505"

// translateError maps driver errors onto the repository sentinels so callers
// never have to inspect pgconn directly.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrConflict
	}

	return err
}
