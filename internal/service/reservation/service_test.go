package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/auroraair/aerogo/internal/domain"
)

func TestValidateCreate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	okFlight := func() *domain.Flight {
		return &domain.Flight{
			ID:         1,
			AircraftID: 7,
			Status:     domain.FlightScheduled,
			Departure:  now.Add(48 * time.Hour),
		}
	}
	okSeat := func() *domain.Seat {
		return &domain.Seat{
			ID:         10,
			AircraftID: 7,
			FlightID:   1,
			State:      domain.SeatAvailable,
		}
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, validateCreate(okFlight(), okSeat(), false, now))
	})

	t.Run("departed flight", func(t *testing.T) {
		f := okFlight()
		f.Departure = now.Add(-time.Hour)
		assert.ErrorIs(t, validateCreate(f, okSeat(), false, now), ErrExpiredFlight)
	})

	t.Run("departing right now counts as departed", func(t *testing.T) {
		f := okFlight()
		f.Departure = now
		assert.ErrorIs(t, validateCreate(f, okSeat(), false, now), ErrExpiredFlight)
	})

	t.Run("cancelled flight", func(t *testing.T) {
		f := okFlight()
		f.Status = domain.FlightCancelled
		assert.ErrorIs(t, validateCreate(f, okSeat(), false, now), ErrFlightClosed)
	})

	t.Run("delayed flight still open", func(t *testing.T) {
		f := okFlight()
		f.Status = domain.FlightDelayed
		assert.NoError(t, validateCreate(f, okSeat(), false, now))
	})

	t.Run("seat from another aircraft", func(t *testing.T) {
		s := okSeat()
		s.AircraftID = 99
		assert.ErrorIs(t, validateCreate(okFlight(), s, false, now), ErrSeatMismatch)
	})

	t.Run("seat from another flight", func(t *testing.T) {
		s := okSeat()
		s.FlightID = 99
		assert.ErrorIs(t, validateCreate(okFlight(), s, false, now), ErrSeatMismatch)
	})

	t.Run("seat not available", func(t *testing.T) {
		s := okSeat()
		s.State = domain.SeatReserved
		assert.ErrorIs(t, validateCreate(okFlight(), s, false, now), ErrSeatUnavailable)
	})

	t.Run("seat in maintenance", func(t *testing.T) {
		s := okSeat()
		s.State = domain.SeatMaintenance
		assert.ErrorIs(t, validateCreate(okFlight(), s, false, now), ErrSeatUnavailable)
	})

	t.Run("passenger already holds a reservation", func(t *testing.T) {
		assert.ErrorIs(t, validateCreate(okFlight(), okSeat(), true, now), ErrDuplicateReservation)
	})

	t.Run("first failure wins", func(t *testing.T) {
		// Departed flight with a bad seat reports the flight problem.
		f := okFlight()
		f.Departure = now.Add(-time.Hour)
		s := okSeat()
		s.State = domain.SeatReserved
		assert.ErrorIs(t, validateCreate(f, s, true, now), ErrExpiredFlight)
	})
}
