package ticket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/auroraair/aerogo/internal/domain"
	"github.com/auroraair/aerogo/internal/metrics"
	redisx "github.com/auroraair/aerogo/internal/redis"
	"github.com/auroraair/aerogo/internal/repository"
	postgresrepo "github.com/auroraair/aerogo/internal/repository/postgres"
	redisrepo "github.com/auroraair/aerogo/internal/repository/redis"
	"github.com/auroraair/aerogo/internal/uow"
)

type Config struct {
	// MaxBarcodeAttempts bounds the fresh-suffix retries when the store
	// rejects a barcode as already taken.
	MaxBarcodeAttempts int
}

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisx.FlightsPubSub
	uow    *uow.UoW
	cfg    Config
	now    func() time.Time
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.FlightsPubSub,
	cfg Config,
) *Service {
	if cfg.MaxBarcodeAttempts <= 0 {
		cfg.MaxBarcodeAttempts = 10
	}

	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
		cfg:    cfg,
		now:    time.Now,
	}
}

// Issue creates the travel document for a confirmed reservation. The
// barcode derives from the reservation code plus a random suffix; a
// collision costs a fresh transaction with a fresh suffix.
//
// Returns:
//   - *domain.Ticket: the issued ticket.
//   - error: ticket.ErrReservationNotFound if the reservation does not exist.
//   - error: ticket.ErrNotConfirmed unless the reservation is confirmed.
//   - error: ticket.ErrAlreadyIssued if the reservation already has a ticket.
//   - error: ticket.ErrBarcodeExhausted when every suffix attempt collided.
func (s *Service) Issue(ctx context.Context, reservationID uuid.UUID) (*domain.Ticket, error) {
	const op = "service.ticket.Issue"

	for attempt := 0; attempt < s.cfg.MaxBarcodeAttempts; attempt++ {
		t, err := s.issueOnce(ctx, reservationID)
		if err != nil {
			if errors.Is(err, repository.ErrBarcodeTaken) {
				continue
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		metrics.TicketsIssued.Inc()

		return t, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrBarcodeExhausted)
}

func (s *Service) issueOnce(ctx context.Context, reservationID uuid.UUID) (*domain.Ticket, error) {
	var out *domain.Ticket

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		res, err := s.store.Reservations().With(tx).Get(ctx, reservationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrReservationNotFound
			}

			return err
		}

		if res.State != domain.ReservationConfirmed {
			return ErrNotConfirmed
		}

		t := &domain.Ticket{
			ID:            uuid.New(),
			ReservationID: reservationID,
			Barcode:       NewBarcode(res.Code),
			State:         domain.TicketActive,
		}

		if err := s.store.Tickets().With(tx).Create(ctx, t); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrAlreadyIssued
			}

			// ErrBarcodeTaken passes through for the caller's retry loop.
			return err
		}

		out = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CheckIn boards a passenger: the ticket moves active -> used with a
// check-in timestamp and boarding gate, the reservation moves to
// checked_in, and the seat flips reserved -> occupied, all in one
// transaction.
//
// Returns:
//   - error: ticket.ErrTicketNotFound if the ticket does not exist.
//   - error: ticket.ErrNotActive unless the ticket is active.
func (s *Service) CheckIn(ctx context.Context, ticketID uuid.UUID, gate string) error {
	const op = "service.ticket.CheckIn"

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		t, err := s.store.Tickets().With(tx).Get(ctx, ticketID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTicketNotFound
			}

			return err
		}

		if !domain.TicketCanTransition(t.State, domain.TicketUsed) {
			return ErrNotActive
		}

		res, err := s.store.Reservations().With(tx).Get(ctx, t.ReservationID)
		if err != nil {
			return err
		}

		if err := s.store.Tickets().With(tx).MarkUsed(ctx, ticketID, s.now(), gate); err != nil {
			return err
		}

		if err := s.store.Reservations().With(tx).SetState(ctx, res.ID, domain.ReservationCheckedIn); err != nil {
			return err
		}

		if err := s.store.Inventory().With(tx).Occupy(ctx, res.SeatID); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateFlight(ctx, res.FlightID)
			_ = s.pubsub.PublishFlightChanged(ctx, res.FlightID)
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Annul voids a ticket and cascades: the linked reservation is cancelled
// and its seat returns to the pool, in the same transaction as the ticket
// write. Annulment is the staff override path, so it also cancels
// checked-in reservations. Annulling an annulled ticket is a no-op.
//
// Returns:
//   - error: ticket.ErrTicketNotFound if the ticket does not exist.
func (s *Service) Annul(ctx context.Context, ticketID uuid.UUID) error {
	const op = "service.ticket.Annul"

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		t, err := s.store.Tickets().With(tx).Get(ctx, ticketID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTicketNotFound
			}

			return err
		}

		if t.State == domain.TicketAnnulled {
			return nil
		}

		if err := s.store.Tickets().With(tx).SetState(ctx, ticketID, domain.TicketAnnulled); err != nil {
			return err
		}

		res, err := s.store.Reservations().With(tx).Get(ctx, t.ReservationID)
		if err != nil {
			return err
		}

		if res.State != domain.ReservationCancelled {
			if err := s.store.Reservations().With(tx).SetState(ctx, res.ID, domain.ReservationCancelled); err != nil {
				return err
			}

			if err := s.store.Inventory().With(tx).Release(ctx, res.SeatID); err != nil {
				return err
			}
		}

		after(func(ctx context.Context) {
			metrics.TicketsAnnulled.Inc()
			_ = s.cache.InvalidateFlight(ctx, res.FlightID)
			_ = s.pubsub.PublishFlightChanged(ctx, res.FlightID)
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetByBarcode retrieves a ticket by its barcode.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*domain.Ticket, error) {
	const op = "service.ticket.GetByBarcode"

	t, err := s.store.Tickets().GetByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrTicketNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}
