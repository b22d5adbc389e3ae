package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHandlePostgresError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: "23505"},
			contains: "already exists",
		},
		{
			name:     "not null violation names the column",
			err:      &pgconn.PgError{Code: "23502", ColumnName: "title"},
			contains: "title",
		},
		{
			name:     "undefined table",
			err:      &pgconn.PgError{Code: "42P01"},
			contains: "migration",
		},
		{
			name:     "other pg error carries the code",
			err:      &pgconn.PgError{Code: "53300", Message: "too many connections"},
			contains: "53300",
		},
		{
			name:     "non-pg error is wrapped",
			err:      errors.New("connection reset"),
			contains: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handlePostgresError("test op", tt.err)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestHandlePostgresErrorKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := handlePostgresError("get asset", cause)
	assert.ErrorIs(t, err, cause)
}
