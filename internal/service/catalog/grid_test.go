package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auroraair/aerogo/internal/domain"
)

func TestSeatGrid(t *testing.T) {
	a := &domain.Aircraft{ID: 3, Rows: 2, Columns: 3}

	seats := SeatGrid(a, 42)
	require.Len(t, seats, 6)

	assert.Equal(t, "1A", seats[0].Number)
	assert.Equal(t, "1B", seats[1].Number)
	assert.Equal(t, "1C", seats[2].Number)
	assert.Equal(t, "2A", seats[3].Number)
	assert.Equal(t, "2C", seats[5].Number)

	for _, s := range seats {
		assert.Equal(t, int64(3), s.AircraftID)
		assert.Equal(t, int64(42), s.FlightID)
		assert.Equal(t, domain.SeatAvailable, s.State)
		assert.Equal(t, domain.CabinEconomy, s.Cabin)
		assert.Zero(t, s.ExtraPriceCents)
	}
}

func TestSeatGridSkipsLetterI(t *testing.T) {
	a := &domain.Aircraft{ID: 1, Rows: 1, Columns: 10}

	seats := SeatGrid(a, 1)
	require.Len(t, seats, 10)

	letters := ""
	for _, s := range seats {
		letters += s.Column
	}
	assert.Equal(t, "ABCDEFGHJK", letters)
}

func TestSeatGridClampsColumns(t *testing.T) {
	a := &domain.Aircraft{ID: 1, Rows: 1, Columns: 30}

	seats := SeatGrid(a, 1)
	assert.Len(t, seats, 10)
}
