package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Flarenzy/blog-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	invalidTextRepresentationCode = "22P02"
	stringDataRightTruncationCode = "22001"
	notNullViolationCode          = "23502"
)

// mapError translates driver errors into domain errors; anything unknown is
// returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if isNoRows(err) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case invalidTextRepresentationCode, stringDataRightTruncationCode, notNullViolationCode:
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message)
		}
	}

	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
