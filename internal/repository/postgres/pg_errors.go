package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/auroraair/aerogo/internal/repository"
)

// Unique indexes the store relies on to close check-then-insert races.
const (
	constraintReservationCode = "reservations_code_key"
	constraintTicketBarcode   = "tickets_barcode_key"
	constraintLivePerFlight   = "reservations_live_passenger_flight_key"
	constraintLivePerSeat     = "reservations_live_seat_key"
)

func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return true
		}
	}

	return false
}

func translateDBErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		// unique_violation
		if pge.Code == "23505" {
			switch pge.ConstraintName {
			case constraintReservationCode:
				return repository.ErrCodeTaken
			case constraintTicketBarcode:
				return repository.ErrBarcodeTaken
			case constraintLivePerFlight:
				return repository.ErrDuplicateReservation
			case constraintLivePerSeat:
				return repository.ErrSeatUnavailable
			}
			return repository.ErrConflict
		}
	}

	return err
}
