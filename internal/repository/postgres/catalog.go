package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroraair/aerogo/internal/domain"
	"github.com/auroraair/aerogo/internal/repository"
)

type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// FlightFilter narrows ListFlights. Zero values mean "no filter".
type FlightFilter struct {
	Origin      string
	Destination string
	Date        time.Time
	OnlyFuture  bool
}

func (r *CatalogRepo) CreateAircraft(ctx context.Context, a *domain.Aircraft) (int64, error) {
	const op = "postgres.CatalogRepo.CreateAircraft"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO aircraft(model, registration, rows, columns, capacity)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		a.Model, a.Registration, a.Rows, a.Columns, a.Capacity,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) GetAircraft(ctx context.Context, id int64) (*domain.Aircraft, error) {
	const op = "postgres.CatalogRepo.GetAircraft"

	db := r.handle()

	var a domain.Aircraft
	err := db.QueryRow(ctx,
		`SELECT id, model, registration, rows, columns, capacity
		 FROM aircraft WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Model, &a.Registration, &a.Rows, &a.Columns, &a.Capacity)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &a, nil
}

func (r *CatalogRepo) CreateFlight(ctx context.Context, f *domain.Flight) (int64, error) {
	const op = "postgres.CatalogRepo.CreateFlight"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO flights(aircraft_id, code, origin, destination, departure_at, arrival_at, status, base_price_cents)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		f.AircraftID, f.Code, f.Origin, f.Destination,
		f.Departure, f.Arrival, f.Status, f.BasePriceCents,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) UpdateFlight(ctx context.Context, f *domain.Flight) error {
	const op = "postgres.CatalogRepo.UpdateFlight"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE flights
		 SET origin = $2, destination = $3, departure_at = $4,
		     arrival_at = $5, status = $6, base_price_cents = $7
		 WHERE id = $1`,
		f.ID, f.Origin, f.Destination, f.Departure, f.Arrival, f.Status, f.BasePriceCents,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *CatalogRepo) SetFlightStatus(ctx context.Context, id int64, status domain.FlightStatus) error {
	const op = "postgres.CatalogRepo.SetFlightStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE flights SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *CatalogRepo) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	const op = "postgres.CatalogRepo.GetFlight"

	db := r.handle()

	var f domain.Flight
	err := db.QueryRow(ctx,
		`SELECT id, aircraft_id, code, origin, destination, departure_at, arrival_at, status, base_price_cents
		 FROM flights WHERE id = $1`,
		id,
	).Scan(
		&f.ID, &f.AircraftID, &f.Code, &f.Origin, &f.Destination,
		&f.Departure, &f.Arrival, &f.Status, &f.BasePriceCents,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &f, nil
}

// ListFlights returns flights matching the filter ordered by departure.
// OnlyFuture additionally hides cancelled flights; that is the passenger
// view, staff list with an empty filter.
func (r *CatalogRepo) ListFlights(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	const op = "postgres.CatalogRepo.ListFlights"

	db := r.handle()

	q := `SELECT id, aircraft_id, code, origin, destination, departure_at, arrival_at, status, base_price_cents
	      FROM flights
	      WHERE ($1 = '' OR origin = $1)
	        AND ($2 = '' OR destination = $2)
	        AND ($3::date IS NULL OR departure_at::date = $3::date)
	        AND (NOT $4 OR (departure_at > now() AND status <> 'cancelled'))
	      ORDER BY departure_at`

	var date any
	if !filter.Date.IsZero() {
		date = filter.Date
	}

	rows, err := db.Query(ctx, q, filter.Origin, filter.Destination, date, filter.OnlyFuture)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Flight
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(
			&f.ID, &f.AircraftID, &f.Code, &f.Origin, &f.Destination,
			&f.Departure, &f.Arrival, &f.Status, &f.BasePriceCents,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) CreatePassenger(ctx context.Context, p *domain.Passenger) (int64, error) {
	const op = "postgres.CatalogRepo.CreatePassenger"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO passengers(full_name, document_type, document, birth_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.FullName, p.DocumentType, p.Document, p.BirthDate,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) GetPassenger(ctx context.Context, id int64) (*domain.Passenger, error) {
	const op = "postgres.CatalogRepo.GetPassenger"

	db := r.handle()

	var p domain.Passenger
	err := db.QueryRow(ctx,
		`SELECT id, full_name, document_type, document, birth_date
		 FROM passengers WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.FullName, &p.DocumentType, &p.Document, &p.BirthDate)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &p, nil
}
