package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalPriceCents(t *testing.T) {
	f := &Flight{BasePriceCents: 150_00}
	s := &Seat{ExtraPriceCents: 25_00}

	assert.Equal(t, int64(175_00), FinalPriceCents(f, s))

	s.ExtraPriceCents = 0
	assert.Equal(t, int64(150_00), FinalPriceCents(f, s))
}

func TestReservationCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from ReservationState
		to   ReservationState
		want bool
	}{
		{"pending to confirmed", ReservationPending, ReservationConfirmed, true},
		{"pending to cancelled", ReservationPending, ReservationCancelled, true},
		{"confirmed to cancelled", ReservationConfirmed, ReservationCancelled, true},
		{"confirmed to checked_in", ReservationConfirmed, ReservationCheckedIn, true},
		{"pending to checked_in", ReservationPending, ReservationCheckedIn, false},
		{"checked_in to cancelled", ReservationCheckedIn, ReservationCancelled, false},
		{"cancelled to confirmed", ReservationCancelled, ReservationConfirmed, false},
		{"cancelled to cancelled", ReservationCancelled, ReservationCancelled, false},
		{"checked_in to confirmed", ReservationCheckedIn, ReservationConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReservationCanTransition(tt.from, tt.to))
		})
	}
}

func TestTicketCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from TicketState
		to   TicketState
		want bool
	}{
		{"active to used", TicketActive, TicketUsed, true},
		{"active to annulled", TicketActive, TicketAnnulled, true},
		{"used to annulled", TicketUsed, TicketAnnulled, true},
		{"used to active", TicketUsed, TicketActive, false},
		{"annulled to used", TicketAnnulled, TicketUsed, false},
		{"annulled to active", TicketAnnulled, TicketActive, false},
		{"active to active", TicketActive, TicketActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TicketCanTransition(tt.from, tt.to))
		})
	}
}

func TestFlightOpenForReservation(t *testing.T) {
	assert.True(t, FlightOpenForReservation(FlightScheduled))
	assert.True(t, FlightOpenForReservation(FlightDelayed))
	assert.False(t, FlightOpenForReservation(FlightCancelled))
	assert.False(t, FlightOpenForReservation(FlightCompleted))
	assert.False(t, FlightOpenForReservation(FlightInProgress))
}
