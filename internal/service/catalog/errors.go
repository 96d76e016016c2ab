package catalog

import "errors"

var (
	ErrAircraftNotFound  = errors.New("aircraft not found")
	ErrAircraftConflict  = errors.New("aircraft registration already exists")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrFlightConflict    = errors.New("flight code already exists")
	ErrInvalidSchedule   = errors.New("arrival must be after departure")
	ErrNegativePrice     = errors.New("base price must not be negative")
	ErrPassengerConflict = errors.New("passenger document already registered")
	ErrPassengerNotFound = errors.New("passenger not found")
)
