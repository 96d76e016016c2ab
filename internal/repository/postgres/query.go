package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroraair/aerogo/internal/domain"
	"github.com/auroraair/aerogo/internal/repository"
)

type QueryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *QueryRepo) With(db DB) *QueryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *QueryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// CountsByState counts a flight's seats by occupancy state.
//
// Returns:
//   - *domain.FlightCounts: the seat counters when found.
//   - error: repository.ErrNotFound if the flight does not exist.
func (r *QueryRepo) CountsByState(ctx context.Context, flightID int64) (*domain.FlightCounts, error) {
	const op = "postgres.QueryRepo.CountsByState"

	db := r.handle()

	var fc domain.FlightCounts
	err := db.QueryRow(ctx,
		`SELECT
		    COALESCE(SUM(CASE WHEN state = 'available' THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(CASE WHEN state = 'reserved' THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(CASE WHEN state = 'occupied' THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(CASE WHEN state = 'maintenance' THEN 1 ELSE 0 END), 0)
		 FROM seats
		 WHERE flight_id = $1`,
		flightID,
	).Scan(&fc.Available, &fc.Reserved, &fc.Occupied, &fc.Maintenance)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	fc.Total = fc.Available + fc.Reserved + fc.Occupied + fc.Maintenance

	if fc.Total == 0 {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM flights WHERE id = $1)`, flightID,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		if !exists {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
	}

	return &fc, nil
}

// Manifest returns the passenger report rows for a flight: one row per
// non-cancelled reservation, ordered by seat.
//
// Returns:
//   - []domain.ManifestRow: the report rows.
//   - error: repository.ErrNotFound if the flight does not exist.
func (r *QueryRepo) Manifest(ctx context.Context, flightID int64) ([]domain.ManifestRow, error) {
	const op = "postgres.QueryRepo.Manifest"

	db := r.handle()

	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM flights WHERE id = $1)`, flightID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	rows, err := db.Query(ctx,
		`SELECT p.full_name, p.document, s.number, r.price_cents, r.code
		 FROM reservations r
		 JOIN passengers p ON p.id = r.passenger_id
		 JOIN seats s ON s.id = r.seat_id
		 WHERE r.flight_id = $1 AND r.state <> 'cancelled'
		 ORDER BY s.seat_row, s.seat_column`,
		flightID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.ManifestRow
	for rows.Next() {
		var m domain.ManifestRow
		if err := rows.Scan(&m.PassengerName, &m.Document, &m.SeatNumber, &m.PriceCents, &m.Code); err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}

		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Snapshot assembles the read-only reservation view the boarding-pass
// generator and the API consume: reservation, flight, seat, passenger and
// ticket (when issued).
//
// Returns:
//   - *domain.ReservationWithTicket: the snapshot when found.
//   - error: repository.ErrNotFound if the reservation does not exist.
func (r *QueryRepo) Snapshot(ctx context.Context, reservationID uuid.UUID) (*domain.ReservationWithTicket, error) {
	const op = "postgres.QueryRepo.Snapshot"

	db := r.handle()

	var out domain.ReservationWithTicket
	res := &out.Reservation
	f := &out.Flight
	s := &out.Seat
	p := &out.Passenger

	err := db.QueryRow(ctx,
		`SELECT r.id, r.flight_id, r.passenger_id, r.seat_id, r.code, r.state, r.price_cents,
		        r.cabin_bag, r.checked_bags, r.requests, r.created_at, r.updated_at,
		        f.id, f.aircraft_id, f.code, f.origin, f.destination, f.departure_at, f.arrival_at, f.status, f.base_price_cents,
		        s.id, s.aircraft_id, s.flight_id, s.number, s.seat_row, s.seat_column, s.cabin, s.state, s.extra_price_cents,
		        p.id, p.full_name, p.document_type, p.document, p.birth_date
		 FROM reservations r
		 JOIN flights f ON f.id = r.flight_id
		 JOIN seats s ON s.id = r.seat_id
		 JOIN passengers p ON p.id = r.passenger_id
		 WHERE r.id = $1`,
		reservationID,
	).Scan(
		&res.ID, &res.FlightID, &res.PassengerID, &res.SeatID, &res.Code, &res.State, &res.PriceCents,
		&res.CabinBag, &res.CheckedBags, &res.Requests, &res.CreatedAt, &res.UpdatedAt,
		&f.ID, &f.AircraftID, &f.Code, &f.Origin, &f.Destination, &f.Departure, &f.Arrival, &f.Status, &f.BasePriceCents,
		&s.ID, &s.AircraftID, &s.FlightID, &s.Number, &s.Row, &s.Column, &s.Cabin, &s.State, &s.ExtraPriceCents,
		&p.ID, &p.FullName, &p.DocumentType, &p.Document, &p.BirthDate,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	t, err := (&TicketRepo{pool: r.pool, db: r.db}).GetByReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &out, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.Ticket = t

	return &out, nil
}

// Summary aggregates platform-wide totals for the staff dashboard.
func (r *QueryRepo) Summary(ctx context.Context) (*domain.PlatformSummary, error) {
	const op = "postgres.QueryRepo.Summary"

	db := r.handle()

	var sum domain.PlatformSummary
	err := db.QueryRow(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM flights),
		    (SELECT COUNT(*) FROM reservations),
		    (SELECT COUNT(*) FROM passengers),
		    (SELECT COUNT(*) FROM seats),
		    (SELECT COUNT(*) FROM seats WHERE state = 'available'),
		    (SELECT COALESCE(SUM(price_cents), 0) FROM reservations WHERE state <> 'cancelled')`,
	).Scan(
		&sum.Flights, &sum.Reservations, &sum.Passengers,
		&sum.SeatsTotal, &sum.SeatsAvailable, &sum.RevenueCents,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return &sum, nil
}
