package reservation

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
	// MaxCodeAttempts bounds the fresh-code retries when the store rejects
	// a reservation code as already taken.
	MaxCodeAttempts int
}

type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  *redisx.FlightsPubSub
	limiter *redisrepo.SlidingWindowLimiter
	uow     *uow.UoW
	cfg     Config
	now     func() time.Time
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.FlightsPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Service {
	if cfg.MaxCodeAttempts <= 0 {
		cfg.MaxCodeAttempts = 10
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		uow:     uow.NewUoW(store),
		cfg:     cfg,
		now:     time.Now,
	}
}

// CreateInput carries everything a passenger submits when reserving a seat.
type CreateInput struct {
	PassengerID int64
	FlightID    int64
	SeatID      int64
	CabinBag    bool
	CheckedBags int
	Requests    string
}

// validateCreate checks the creation preconditions in their contractual
// order; the first failure wins.
func validateCreate(f *domain.Flight, s *domain.Seat, hasLive bool, now time.Time) error {
	if !f.Departure.After(now) {
		return ErrExpiredFlight
	}

	if !domain.FlightOpenForReservation(f.Status) {
		return ErrFlightClosed
	}

	if s.AircraftID != f.AircraftID || s.FlightID != f.ID {
		return ErrSeatMismatch
	}

	if s.State != domain.SeatAvailable {
		return ErrSeatUnavailable
	}

	if hasLive {
		return ErrDuplicateReservation
	}

	return nil
}

// Create reserves a seat for a passenger.
//
// Preconditions, first failure wins: flight exists and departs in the
// future, seat belongs to the flight's aircraft, seat is available, the
// passenger holds no live reservation for the flight. On success the
// reservation is persisted in pending state with its final price and a
// unique 8-character code, and the seat flips to reserved, all in one
// serializable transaction. Each code collision costs a fresh transaction
// with a fresh code, up to cfg.MaxCodeAttempts.
//
// Returns:
//   - *domain.Reservation: the created reservation.
//   - error: reservation.ErrExpiredFlight, ErrSeatMismatch,
//     ErrSeatUnavailable, ErrDuplicateReservation per the precondition that
//     failed.
//   - error: reservation.ErrCodeExhausted when every code attempt collided.
//   - error: reservation.ErrRateLimited when the caller exceeds the attempt
//     budget.
func (s *Service) Create(ctx context.Context, in CreateInput, rlKey string) (*domain.Reservation, error) {
	const op = "service.reservation.Create"

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w: retry in %s", op, ErrRateLimited, retry)
		}
	}

	for attempt := 0; attempt < s.cfg.MaxCodeAttempts; attempt++ {
		res, err := s.createOnce(ctx, in, NewCode())
		if err != nil {
			if errors.Is(err, repository.ErrCodeTaken) {
				continue
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		metrics.ReservationsCreated.Inc()

		return res, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrCodeExhausted)
}

func (s *Service) createOnce(ctx context.Context, in CreateInput, code string) (*domain.Reservation, error) {
	var out *domain.Reservation

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		flight, err := s.store.Catalog().With(tx).GetFlight(ctx, in.FlightID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrFlightNotFound
			}

			return err
		}

		seat, err := s.store.Inventory().With(tx).GetSeat(ctx, in.SeatID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrSeatNotFound
			}

			return err
		}

		hasLive, err := s.store.Reservations().With(tx).HasLive(ctx, in.PassengerID, in.FlightID)
		if err != nil {
			return err
		}

		if err := validateCreate(flight, seat, hasLive, s.now()); err != nil {
			return err
		}

		res := &domain.Reservation{
			ID:          uuid.New(),
			FlightID:    in.FlightID,
			PassengerID: in.PassengerID,
			SeatID:      in.SeatID,
			Code:        code,
			State:       domain.ReservationPending,
			PriceCents:  domain.FinalPriceCents(flight, seat),
			CabinBag:    in.CabinBag,
			CheckedBags: in.CheckedBags,
			Requests:    in.Requests,
		}

		if err := s.store.Reservations().With(tx).Create(ctx, res); err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicateReservation):
				return ErrDuplicateReservation
			case errors.Is(err, repository.ErrSeatUnavailable):
				return ErrSeatUnavailable
			}

			// ErrCodeTaken passes through for the caller's retry loop.
			return err
		}

		if err := s.store.Inventory().With(tx).Reserve(ctx, in.SeatID); err != nil {
			if errors.Is(err, repository.ErrSeatUnavailable) {
				return ErrSeatUnavailable
			}

			return err
		}

		out = res

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateFlight(ctx, in.FlightID)
			_ = s.pubsub.PublishFlightChanged(ctx, in.FlightID)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Cancel cancels a reservation and returns its seat to the pool. Cancelling
// an already-cancelled reservation is a no-op. A checked-in reservation is
// terminal and cannot be cancelled. A live ticket on the reservation is
// annulled in the same transaction so no active ticket outlives its
// reservation.
//
// Returns:
//   - error: reservation.ErrReservationNotFound if the reservation does not
//     exist.
//   - error: reservation.ErrAlreadyCheckedIn for checked-in reservations.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	const op = "service.reservation.Cancel"

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		res, err := s.store.Reservations().With(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrReservationNotFound
			}

			return err
		}

		if res.State == domain.ReservationCancelled {
			return nil
		}

		if !domain.ReservationCanTransition(res.State, domain.ReservationCancelled) {
			return ErrAlreadyCheckedIn
		}

		ticket, err := s.store.Tickets().With(tx).GetByReservation(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if ticket != nil && ticket.State != domain.TicketAnnulled {
			if err := s.store.Tickets().With(tx).SetState(ctx, ticket.ID, domain.TicketAnnulled); err != nil {
				return err
			}
		}

		if err := s.store.Reservations().With(tx).SetState(ctx, id, domain.ReservationCancelled); err != nil {
			return err
		}

		if err := s.store.Inventory().With(tx).Release(ctx, res.SeatID); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			metrics.ReservationsCancelled.Inc()
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

// Confirm moves a reservation pending -> confirmed. Confirming an
// already-confirmed reservation is a no-op.
//
// Returns:
//   - error: reservation.ErrReservationNotFound if the reservation does not
//     exist.
//   - error: reservation.ErrInvalidState for cancelled or checked-in
//     reservations.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) error {
	const op = "service.reservation.Confirm"

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		res, err := s.store.Reservations().With(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrReservationNotFound
			}

			return err
		}

		if res.State == domain.ReservationConfirmed {
			return nil
		}

		if !domain.ReservationCanTransition(res.State, domain.ReservationConfirmed) {
			return ErrInvalidState
		}

		return s.store.Reservations().With(tx).SetState(ctx, id, domain.ReservationConfirmed)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetByCode retrieves a reservation by its human-facing code.
func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	const op = "service.reservation.GetByCode"

	res, err := s.store.Reservations().GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}
