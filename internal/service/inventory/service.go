package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/auroraair/aerogo/internal/domain"
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

// ListAvailable returns a flight's available seats. includeSeatID, when
// non-zero, keeps the caller's currently-held seat in the list on
// reservation-edit paths.
//
// Returns:
//   - []domain.Seat: the seats.
//   - error: inventory.ErrFlightNotFound if the flight does not exist.
func (s *Service) ListAvailable(ctx context.Context, flightID, includeSeatID int64) ([]domain.Seat, error) {
	const op = "service.inventory.ListAvailable"

	if _, err := s.store.Catalog().GetFlight(ctx, flightID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrFlightNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seats, err := s.store.Inventory().ListAvailable(ctx, flightID, includeSeatID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return seats, nil
}

// BatchCreateSeats inserts staff-defined seats, typically premium rows
// with surcharges that the default grid does not cover.
//
// Returns:
//   - error: inventory.ErrSeatsConflict if a seat number already exists on
//     the aircraft for the flight.
func (s *Service) BatchCreateSeats(ctx context.Context, flightID int64, seats []domain.Seat) error {
	const op = "service.inventory.BatchCreateSeats"

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if err := s.store.Inventory().With(tx).BatchCreateSeats(ctx, seats); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrSeatsConflict
			}
			return err
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateFlight(ctx, flightID)
			_ = s.pubsub.PublishFlightChanged(ctx, flightID)
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
