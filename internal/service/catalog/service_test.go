package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/auroraair/aerogo/internal/domain"
)

func TestValidateFlight(t *testing.T) {
	departure := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("ok", func(t *testing.T) {
		f := &domain.Flight{
			Departure:      departure,
			Arrival:        departure.Add(2 * time.Hour),
			BasePriceCents: 120_00,
		}
		assert.NoError(t, validateFlight(f))
	})

	t.Run("arrival before departure", func(t *testing.T) {
		f := &domain.Flight{
			Departure: departure,
			Arrival:   departure.Add(-time.Hour),
		}
		assert.ErrorIs(t, validateFlight(f), ErrInvalidSchedule)
	})

	t.Run("arrival equals departure", func(t *testing.T) {
		f := &domain.Flight{
			Departure: departure,
			Arrival:   departure,
		}
		assert.ErrorIs(t, validateFlight(f), ErrInvalidSchedule)
	})

	t.Run("negative price", func(t *testing.T) {
		f := &domain.Flight{
			Departure:      departure,
			Arrival:        departure.Add(time.Hour),
			BasePriceCents: -1,
		}
		assert.ErrorIs(t, validateFlight(f), ErrNegativePrice)
	})
}
