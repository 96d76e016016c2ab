package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/auroraair/aerogo/internal/domain"
	redisx "github.com/auroraair/aerogo/internal/redis"
	"github.com/auroraair/aerogo/internal/repository"
	postgresrepo "github.com/auroraair/aerogo/internal/repository/postgres"
	redisrepo "github.com/auroraair/aerogo/internal/repository/redis"
)

type Config struct {
	FlightSummaryTTL time.Duration
	AvailabilityTTL  time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.FlightSummaryTTL <= 0 {
		cfg.FlightSummaryTTL = 60 * time.Second
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// GetFlight retrieves a flight through the cache layer.
//
// Returns:
//   - *domain.Flight: the flight.
//   - error: query.ErrFlightNotFound if the flight does not exist.
func (s *Service) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	const op = "service.query.GetFlight"

	key := redisx.KeyFlightSummary(id)

	flight, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.FlightSummaryTTL,
		func(ctx context.Context) (domain.Flight, error) {
			f, err := s.store.Catalog().GetFlight(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Flight{}, ErrFlightNotFound
				}

				return domain.Flight{}, err
			}

			return *f, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &flight, nil
}

// CountsByState retrieves a flight's seat counters through the cache layer.
//
// Returns:
//   - *domain.FlightCounts: seats per occupancy state.
//   - error: query.ErrFlightNotFound if the flight does not exist.
func (s *Service) CountsByState(ctx context.Context, flightID int64) (*domain.FlightCounts, error) {
	const op = "service.query.CountsByState"

	key := redisx.KeyFlightAvailability(flightID)

	counts, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.AvailabilityTTL,
		func(ctx context.Context) (domain.FlightCounts, error) {
			fc, err := s.store.Query().CountsByState(ctx, flightID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.FlightCounts{}, ErrFlightNotFound
				}

				return domain.FlightCounts{}, err
			}

			return *fc, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &counts, nil
}

// Manifest returns the passenger report for a flight, one row per live
// reservation. The rows feed the CSV exporter and the PDF report.
//
// Returns:
//   - []domain.ManifestRow: the report rows.
//   - error: query.ErrFlightNotFound if the flight does not exist.
func (s *Service) Manifest(ctx context.Context, flightID int64) ([]domain.ManifestRow, error) {
	const op = "service.query.Manifest"

	rows, err := s.store.Query().Manifest(ctx, flightID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrFlightNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rows, nil
}

// Snapshot returns the read-only reservation view the boarding-pass
// generator consumes.
//
// Returns:
//   - *domain.ReservationWithTicket: reservation, flight, seat, passenger
//     and ticket when issued.
//   - error: query.ErrReservationNotFound if the reservation does not exist.
func (s *Service) Snapshot(ctx context.Context, reservationID uuid.UUID) (*domain.ReservationWithTicket, error) {
	const op = "service.query.Snapshot"

	snap, err := s.store.Query().Snapshot(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}

// Summary aggregates the staff dashboard totals.
func (s *Service) Summary(ctx context.Context) (*domain.PlatformSummary, error) {
	const op = "service.query.Summary"

	sum, err := s.store.Query().Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sum, nil
}
