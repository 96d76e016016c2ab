package inventory

import "errors"

var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrSeatNotFound   = errors.New("seat not found")
	ErrSeatsConflict  = errors.New("some seats already exist")
)
