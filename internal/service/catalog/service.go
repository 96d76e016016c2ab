package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/auroraair/aerogo/internal/domain"
	"github.com/auroraair/aerogo/internal/metrics"
	redisx "github.com/auroraair/aerogo/internal/redis"
	"github.com/auroraair/aerogo/internal/repository"
	postgresrepo "github.com/auroraair/aerogo/internal/repository/postgres"
	redisrepo "github.com/auroraair/aerogo/internal/repository/redis"
	"github.com/auroraair/aerogo/internal/uow"
)

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisx.FlightsPubSub
	uow    *uow.UoW
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, pubsub *redisx.FlightsPubSub) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
	}
}

// validateFlight enforces the catalog invariants shared by create and
// update: arrival after departure, non-negative base price.
func validateFlight(f *domain.Flight) error {
	if !f.Arrival.After(f.Departure) {
		return ErrInvalidSchedule
	}

	if f.BasePriceCents < 0 {
		return ErrNegativePrice
	}

	return nil
}

func (s *Service) CreateAircraft(ctx context.Context, a *domain.Aircraft) (int64, error) {
	const op = "service.catalog.CreateAircraft"

	if a.Capacity <= 0 {
		a.Capacity = a.Rows * a.Columns
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Catalog().With(tx).CreateAircraft(ctx, a)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrAircraftConflict)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}

// CreateFlightWithSeats creates a flight in scheduled state and seeds its
// seat inventory from the aircraft grid: one available economy seat per
// (row, column), numbered like 12C.
//
// Returns:
//   - int64: the created flight ID.
//   - error: catalog.ErrInvalidSchedule or catalog.ErrNegativePrice on bad
//     input, catalog.ErrFlightConflict on a duplicate code,
//     catalog.ErrAircraftNotFound if the aircraft does not exist.
func (s *Service) CreateFlightWithSeats(ctx context.Context, f *domain.Flight) (int64, error) {
	const op = "service.catalog.CreateFlightWithSeats"

	if err := validateFlight(f); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if f.Status == "" {
		f.Status = domain.FlightScheduled
	}

	var flightID int64

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		aircraft, err := s.store.Catalog().With(tx).GetAircraft(ctx, f.AircraftID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrAircraftNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		flightID, err = s.store.Catalog().With(tx).CreateFlight(ctx, f)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrFlightConflict)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		seats := SeatGrid(aircraft, flightID)
		if err := s.store.Inventory().With(tx).BatchCreateSeats(ctx, seats); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateFlight(ctx, flightID)
			_ = s.pubsub.PublishFlightChanged(ctx, flightID)
		})

		return nil
	})

	return flightID, err
}

// UpdateFlight rewrites a flight's schedule, route, status and price.
//
// Returns:
//   - error: catalog.ErrFlightNotFound if the flight does not exist.
func (s *Service) UpdateFlight(ctx context.Context, f *domain.Flight) error {
	const op = "service.catalog.UpdateFlight"

	if err := validateFlight(f); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if err := s.store.Catalog().With(tx).UpdateFlight(ctx, f); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrFlightNotFound
			}
			return err
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateFlight(ctx, f.ID)
			_ = s.pubsub.PublishFlightChanged(ctx, f.ID)
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CancelFlight sets the flight status to cancelled and cascades: every
// pending or confirmed reservation on the flight is cancelled, its ticket
// annulled and its seat freed, in the same transaction as the status write.
// Cancelling an already-cancelled flight is a no-op.
//
// Returns:
//   - int64: the number of reservations cancelled by the cascade.
//   - error: catalog.ErrFlightNotFound if the flight does not exist.
func (s *Service) CancelFlight(ctx context.Context, flightID int64) (int64, error) {
	const op = "service.catalog.CancelFlight"

	var cancelled int64

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		flight, err := s.store.Catalog().With(tx).GetFlight(ctx, flightID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrFlightNotFound
			}
			return err
		}

		if flight.Status == domain.FlightCancelled {
			return nil
		}

		if err := s.store.Catalog().With(tx).SetFlightStatus(ctx, flightID, domain.FlightCancelled); err != nil {
			return err
		}

		cancelled, err = s.store.Reservations().With(tx).CancelAllForFlight(ctx, flightID)
		if err != nil {
			return err
		}

		after(func(ctx context.Context) {
			metrics.FlightsCancelled.Inc()
			_ = s.cache.InvalidateFlight(ctx, flightID)
			_ = s.pubsub.PublishFlightChanged(ctx, flightID)
		})

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cancelled, nil
}

// ListFlights returns flights matching the filter. Passenger searches see
// only future departures of non-cancelled flights; staff pass staffView to
// list everything.
func (s *Service) ListFlights(ctx context.Context, filter postgresrepo.FlightFilter, staffView bool) ([]domain.Flight, error) {
	const op = "service.catalog.ListFlights"

	filter.OnlyFuture = !staffView

	flights, err := s.store.Catalog().ListFlights(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return flights, nil
}

func (s *Service) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	const op = "service.catalog.GetFlight"

	f, err := s.store.Catalog().GetFlight(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrFlightNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

func (s *Service) RegisterPassenger(ctx context.Context, p *domain.Passenger) (int64, error) {
	const op = "service.catalog.RegisterPassenger"

	id, err := s.store.Catalog().CreatePassenger(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, fmt.Errorf("%s: %w", op, ErrPassengerConflict)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}
