package pgdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no rows", err: pgx.ErrNoRows, wantErr: e.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolationCode}, wantErr: e.ErrConflict},
		{name: "check violation", err: &pgconn.PgError{Code: checkViolationCode}, wantErr: e.ErrInvalidArgument},
		{name: "numeric out of range", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: outOfRangeCode}), wantErr: e.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("ProductRepo.Create", tt.err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMapError_Unknown(t *testing.T) {
	cause := errors.New("connection reset")

	err := mapError("ProductRepo.Create", cause)

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, e.ErrInvalidArgument)
	assert.NotErrorIs(t, err, e.ErrNotFound)
}
