package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroraair/aerogo/internal/domain"
	"github.com/auroraair/aerogo/internal/repository"
)

type TicketRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TicketRepo) With(db DB) *TicketRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TicketRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a ticket row.
//
// Returns:
//   - error: repository.ErrBarcodeTaken on a barcode collision.
//   - error: repository.ErrConflict if the reservation already has a ticket.
func (r *TicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	const op = "postgres.TicketRepo.Create"

	db := r.handle()

	err := db.QueryRow(ctx,
		`INSERT INTO tickets(id, reservation_id, barcode, state, gate)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING issued_at`,
		t.ID, t.ReservationID, t.Barcode, t.State, t.Gate,
	).Scan(&t.IssuedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

func (r *TicketRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.Get"

	return r.get(ctx, op, `WHERE id = $1`, id)
}

func (r *TicketRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.GetByBarcode"

	return r.get(ctx, op, `WHERE barcode = $1`, barcode)
}

func (r *TicketRepo) GetByReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.GetByReservation"

	return r.get(ctx, op, `WHERE reservation_id = $1`, reservationID)
}

// MarkUsed stamps the check-in time and boarding gate while moving the
// ticket active -> used.
func (r *TicketRepo) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time, gate string) error {
	const op = "postgres.TicketRepo.MarkUsed"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE tickets SET state = 'used', checked_in_at = $2, gate = $3 WHERE id = $1`,
		id, at, gate,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *TicketRepo) SetState(ctx context.Context, id uuid.UUID, state domain.TicketState) error {
	const op = "postgres.TicketRepo.SetState"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE tickets SET state = $2 WHERE id = $1`,
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

func (r *TicketRepo) get(ctx context.Context, op, where string, arg any) (*domain.Ticket, error) {
	db := r.handle()

	var t domain.Ticket
	err := db.QueryRow(ctx,
		`SELECT id, reservation_id, barcode, state, gate, checked_in_at, issued_at
		 FROM tickets `+where,
		arg,
	).Scan(&t.ID, &t.ReservationID, &t.Barcode, &t.State, &t.Gate, &t.CheckedInAt, &t.IssuedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return &t, nil
}
