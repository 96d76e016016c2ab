package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/auroraair/aerogo/internal/repository"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestTranslateDBErr(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, repository.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), repository.ErrNotFound},
		{"code collision", uniqueViolation(constraintReservationCode), repository.ErrCodeTaken},
		{"barcode collision", uniqueViolation(constraintTicketBarcode), repository.ErrBarcodeTaken},
		{"live per flight", uniqueViolation(constraintLivePerFlight), repository.ErrDuplicateReservation},
		{"live per seat", uniqueViolation(constraintLivePerSeat), repository.ErrSeatUnavailable},
		{"other unique index", uniqueViolation("flights_code_key"), repository.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateDBErr(tt.in))
		})
	}

	t.Run("unknown errors pass through", func(t *testing.T) {
		err := errors.New("connection reset")
		assert.Equal(t, err, translateDBErr(err))
	})

	t.Run("non unique pg errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503"}
		assert.Equal(t, error(pgErr), translateDBErr(pgErr))
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, IsRetryable(fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40001"})))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}
