package query

import "errors"

var (
	ErrFlightNotFound      = errors.New("flight not found")
	ErrReservationNotFound = errors.New("reservation not found")
)
