package domain

// FinalPriceCents computes a reservation's immutable price: flight base
// price plus the seat surcharge.
func FinalPriceCents(f *Flight, s *Seat) int64 {
	return f.BasePriceCents + s.ExtraPriceCents
}

// ReservationCanTransition reports whether a reservation may move from one
// state to another. checked_in is terminal: a checked-in reservation cannot
// be cancelled.
func ReservationCanTransition(from, to ReservationState) bool {
	switch {
	case from == to:
		return false
	case to == ReservationConfirmed:
		return from == ReservationPending
	case to == ReservationCheckedIn:
		return from == ReservationConfirmed
	case to == ReservationCancelled:
		return from == ReservationPending || from == ReservationConfirmed
	default:
		return false
	}
}

// TicketCanTransition reports whether a ticket may move from one state to
// another. Annulment is allowed from both active and used; annulled is
// terminal.
func TicketCanTransition(from, to TicketState) bool {
	switch {
	case from == to:
		return false
	case to == TicketUsed:
		return from == TicketActive
	case to == TicketAnnulled:
		return from == TicketActive || from == TicketUsed
	default:
		return false
	}
}

// FlightOpenForReservation reports whether new reservations may target the
// flight. Cancelled and completed flights never accept reservations.
func FlightOpenForReservation(status FlightStatus) bool {
	return status == FlightScheduled || status == FlightDelayed
}
