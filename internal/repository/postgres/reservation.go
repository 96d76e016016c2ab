package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroraair/aerogo/internal/domain"
	"github.com/auroraair/aerogo/internal/repository"
)

type ReservationRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ReservationRepo) With(db DB) *ReservationRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ReservationRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a reservation row. Uniqueness of the code, of the live
// (passenger, flight) pair and of the live seat claim is enforced by the
// store's unique indexes; violations surface as typed repository errors.
//
// Returns:
//   - error: repository.ErrCodeTaken on a reservation-code collision.
//   - error: repository.ErrDuplicateReservation if the passenger already
//     holds a live reservation for the flight.
//   - error: repository.ErrSeatUnavailable if another live reservation
//     already claims the seat.
func (r *ReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	const op = "postgres.ReservationRepo.Create"

	db := r.handle()

	err := db.QueryRow(ctx,
		`INSERT INTO reservations(id, flight_id, passenger_id, seat_id, code, state, price_cents, cabin_bag, checked_bags, requests)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		res.ID, res.FlightID, res.PassengerID, res.SeatID, res.Code,
		res.State, res.PriceCents, res.CabinBag, res.CheckedBags, res.Requests,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

// Get retrieves a reservation by its ID.
//
// Returns:
//   - error: repository.ErrNotFound if the reservation does not exist.
func (r *ReservationRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	const op = "postgres.ReservationRepo.Get"

	return r.get(ctx, op, `WHERE id = $1`, id)
}

// GetByCode retrieves a reservation by its human-facing code.
//
// Returns:
//   - error: repository.ErrNotFound if no reservation carries the code.
func (r *ReservationRepo) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	const op = "postgres.ReservationRepo.GetByCode"

	return r.get(ctx, op, `WHERE code = $1`, code)
}

// SetState moves a reservation to the given state and bumps updated_at.
// Transition legality is the service's concern; the repo only writes.
func (r *ReservationRepo) SetState(ctx context.Context, id uuid.UUID, state domain.ReservationState) error {
	const op = "postgres.ReservationRepo.SetState"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE reservations SET state = $2, updated_at = now() WHERE id = $1`,
		id, state,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

// HasLive reports whether the passenger holds a non-cancelled reservation
// for the flight. Used as the in-transaction duplicate pre-check; the
// partial unique index backs it at commit time.
func (r *ReservationRepo) HasLive(ctx context.Context, passengerID, flightID int64) (bool, error) {
	const op = "postgres.ReservationRepo.HasLive"

	db := r.handle()

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM reservations
		   WHERE passenger_id = $1 AND flight_id = $2 AND state <> 'cancelled'
		 )`,
		passengerID, flightID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return exists, nil
}

// CancelAllForFlight cancels every pending or confirmed reservation on the
// flight, annuls their tickets and frees their seats. Checked-in
// reservations are left untouched. Runs set-based so a large flight cancels
// in three statements.
//
// Returns:
//   - int64: the number of reservations cancelled.
func (r *ReservationRepo) CancelAllForFlight(ctx context.Context, flightID int64) (int64, error) {
	const op = "postgres.ReservationRepo.CancelAllForFlight"

	if r.db != nil {
		n, err := r.cancelAllForFlightCore(ctx, r.db, flightID)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		return n, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer tx.Rollback(ctx)

	n, err := r.cancelAllForFlightCore(ctx, tx, flightID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return n, nil
}

func (r *ReservationRepo) cancelAllForFlightCore(ctx context.Context, db DB, flightID int64) (int64, error) {
	if _, err := db.Exec(ctx,
		`UPDATE tickets SET state = 'annulled'
		 WHERE state IN ('active', 'used')
		   AND reservation_id IN (
		     SELECT id FROM reservations
		     WHERE flight_id = $1 AND state IN ('pending', 'confirmed')
		   )`,
		flightID,
	); err != nil {
		return 0, err
	}

	if _, err := db.Exec(ctx,
		`UPDATE seats SET state = 'available'
		 WHERE state IN ('reserved', 'occupied')
		   AND id IN (
		     SELECT seat_id FROM reservations
		     WHERE flight_id = $1 AND state IN ('pending', 'confirmed')
		   )`,
		flightID,
	); err != nil {
		return 0, err
	}

	tag, err := db.Exec(ctx,
		`UPDATE reservations SET state = 'cancelled', updated_at = now()
		 WHERE flight_id = $1 AND state IN ('pending', 'confirmed')`,
		flightID,
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *ReservationRepo) get(ctx context.Context, op, where string, arg any) (*domain.Reservation, error) {
	db := r.handle()

	var res domain.Reservation
	err := db.QueryRow(ctx,
		`SELECT id, flight_id, passenger_id, seat_id, code, state, price_cents, cabin_bag, checked_bags, requests, created_at, updated_at
		 FROM reservations `+where,
		arg,
	).Scan(
		&res.ID, &res.FlightID, &res.PassengerID, &res.SeatID, &res.Code,
		&res.State, &res.PriceCents, &res.CabinBag, &res.CheckedBags,
		&res.Requests, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return &res, nil
}
