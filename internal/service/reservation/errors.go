package reservation

import "errors"

var (
	ErrFlightNotFound       = errors.New("flight not found")
	ErrExpiredFlight        = errors.New("flight departure has passed")
	ErrFlightClosed         = errors.New("flight does not accept reservations")
	ErrSeatNotFound         = errors.New("seat not found")
	ErrSeatMismatch         = errors.New("seat does not belong to the flight's aircraft")
	ErrSeatUnavailable      = errors.New("seat is not available")
	ErrDuplicateReservation = errors.New("passenger already holds a reservation for this flight")
	ErrCodeExhausted        = errors.New("could not generate a unique reservation code")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrAlreadyCheckedIn     = errors.New("checked-in reservation cannot be cancelled")
	ErrInvalidState         = errors.New("reservation state does not allow this operation")
	ErrRateLimited          = errors.New("rate limited")
)
