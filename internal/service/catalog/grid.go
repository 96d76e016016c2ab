package catalog

import (
	"fmt"

	"github.com/auroraair/aerogo/internal/domain"
)

const columnLetters = "ABCDEFGHJK"

// SeatGrid expands an aircraft's rows x columns layout into seat rows for a
// flight. Seats start available, in economy, with no surcharge; staff
// adjust cabins and surcharges afterwards.
func SeatGrid(a *domain.Aircraft, flightID int64) []domain.Seat {
	cols := a.Columns
	if cols > len(columnLetters) {
		cols = len(columnLetters)
	}

	seats := make([]domain.Seat, 0, a.Rows*cols)
	for row := 1; row <= a.Rows; row++ {
		for c := 0; c < cols; c++ {
			letter := string(columnLetters[c])
			seats = append(seats, domain.Seat{
				AircraftID: a.ID,
				FlightID:   flightID,
				Number:     fmt.Sprintf("%d%s", row, letter),
				Row:        row,
				Column:     letter,
				Cabin:      domain.CabinEconomy,
				State:      domain.SeatAvailable,
			})
		}
	}

	return seats
}
