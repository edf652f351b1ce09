package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/Flarenzy/blog-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	boom := errors.New("boom")

	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("scan: %w", sql.ErrNoRows)), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}), domain.ErrInvalidInput)
	assert.Same(t, boom, mapError(boom))

	unique := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, error(unique), mapError(unique))
}

func TestParsePostID(t *testing.T) {
	parsed, err := parsePostID("0b6f6a3e-8f0e-4c1e-9d2a-3f1c2b4a5d6e")
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	_, err = parsePostID("42")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
