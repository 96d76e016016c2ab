package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroraair/aerogo/internal/domain"
	"github.com/auroraair/aerogo/internal/repository"
)

type InventoryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *InventoryRepo) With(db DB) *InventoryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *InventoryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *InventoryRepo) BatchCreateSeats(ctx context.Context, seats []domain.Seat) error {
	const op = "postgres.InventoryRepo.BatchCreateSeats"

	db := r.handle()

	batch := &pgx.Batch{}
	for _, s := range seats {
		batch.Queue(
			`INSERT INTO seats(aircraft_id, flight_id, number, seat_row, seat_column, cabin, state, extra_price_cents)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (aircraft_id, flight_id, number) DO NOTHING`,
			s.AircraftID, s.FlightID, s.Number, s.Row, s.Column, s.Cabin, s.State, s.ExtraPriceCents,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *InventoryRepo) GetSeat(ctx context.Context, id int64) (*domain.Seat, error) {
	const op = "postgres.InventoryRepo.GetSeat"

	db := r.handle()

	var s domain.Seat
	err := db.QueryRow(ctx,
		`SELECT id, aircraft_id, flight_id, number, seat_row, seat_column, cabin, state, extra_price_cents
		 FROM seats WHERE id = $1`,
		id,
	).Scan(
		&s.ID, &s.AircraftID, &s.FlightID, &s.Number,
		&s.Row, &s.Column, &s.Cabin, &s.State, &s.ExtraPriceCents,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &s, nil
}

// ListAvailable returns a flight's available seats ordered by row and
// column. includeSeatID, when non-zero, is returned regardless of its state
// so a passenger editing an existing reservation keeps their current seat in
// the list.
//
// Returns:
//   - []domain.Seat: the available seats.
//   - error: repository.ErrNotFound if the flight does not exist.
func (r *InventoryRepo) ListAvailable(ctx context.Context, flightID, includeSeatID int64) ([]domain.Seat, error) {
	const op = "postgres.InventoryRepo.ListAvailable"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, aircraft_id, flight_id, number, seat_row, seat_column, cabin, state, extra_price_cents
		 FROM seats
		 WHERE flight_id = $1 AND (state = 'available' OR id = $2)
		 ORDER BY seat_row, seat_column`,
		flightID, includeSeatID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Seat
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(
			&s.ID, &s.AircraftID, &s.FlightID, &s.Number,
			&s.Row, &s.Column, &s.Cabin, &s.State, &s.ExtraPriceCents,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Reserve transitions a seat available -> reserved. The conditional UPDATE
// is the serialization point for competing reservations: whoever flips the
// row wins, everyone else sees repository.ErrSeatUnavailable.
func (r *InventoryRepo) Reserve(ctx context.Context, seatID int64) error {
	const op = "postgres.InventoryRepo.Reserve"

	return r.transition(ctx, op, seatID,
		`UPDATE seats SET state = 'reserved'
		 WHERE id = $1 AND state = 'available'`)
}

// Occupy transitions a seat reserved -> occupied at check-in.
func (r *InventoryRepo) Occupy(ctx context.Context, seatID int64) error {
	const op = "postgres.InventoryRepo.Occupy"

	return r.transition(ctx, op, seatID,
		`UPDATE seats SET state = 'occupied'
		 WHERE id = $1 AND state = 'reserved'`)
}

// Release transitions a seat reserved/occupied -> available. Releasing an
// already-available seat is a no-op; releasing a maintenance seat fails.
func (r *InventoryRepo) Release(ctx context.Context, seatID int64) error {
	const op = "postgres.InventoryRepo.Release"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE seats SET state = 'available'
		 WHERE id = $1 AND state IN ('reserved', 'occupied')`,
		seatID,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 1 {
		return nil
	}

	state, err := r.seatState(ctx, seatID)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if state == domain.SeatAvailable {
		return nil
	}

	return fmt.Errorf("%s: seat %d is %s: %w", op, seatID, state, repository.ErrInvalidTransition)
}

func (r *InventoryRepo) transition(ctx context.Context, op string, seatID int64, stmt string) error {
	db := r.handle()

	tag, err := db.Exec(ctx, stmt, seatID)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.seatState(ctx, seatID); err != nil {
		return wrapDBErr(op, err)
	}

	return fmt.Errorf("%s: %w", op, repository.ErrSeatUnavailable)
}

func (r *InventoryRepo) seatState(ctx context.Context, seatID int64) (domain.SeatState, error) {
	db := r.handle()

	var state domain.SeatState
	if err := db.QueryRow(ctx, `SELECT state FROM seats WHERE id = $1`, seatID).Scan(&state); err != nil {
		return "", err
	}

	return state, nil
}
