package ticket

import "errors"

var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotConfirmed        = errors.New("reservation is not confirmed")
	ErrAlreadyIssued       = errors.New("reservation already has a ticket")
	ErrNotActive           = errors.New("ticket is not active")
	ErrBarcodeExhausted    = errors.New("could not generate a unique barcode")
)
