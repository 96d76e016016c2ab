package repository

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrSeatUnavailable      = errors.New("seat unavailable")
	ErrSeatMismatch         = errors.New("seat does not belong to the flight's aircraft")
	ErrDuplicateReservation = errors.New("passenger already holds a reservation for this flight")
	ErrCodeTaken            = errors.New("reservation code already taken")
	ErrBarcodeTaken         = errors.New("ticket barcode already taken")
	ErrInvalidTransition    = errors.New("invalid state transition")
)
